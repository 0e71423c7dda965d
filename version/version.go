package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at link time.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

const product = "endpoints"

// Info is the build identity served on /version.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty"`
	Release   bool   `json:"release"`
}

// Get assembles Info from the stamped variables, filling gaps from the
// embedded build settings.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = shortCommit(s.Value)
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}

	info.Release = isRelease(info.Version) && !info.Dirty
	return info
}

// String renders the version as "1.2.0 (abc1234)", adding "-dirty" for
// builds from a modified tree.
func (i Info) String() string {
	v := i.Version
	if i.Dirty {
		v += "-dirty"
	}
	if i.Commit == "" {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, i.Commit)
}

// UserAgent is sent on outbound backend requests.
func UserAgent() string {
	return product + "/" + Version
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

func isRelease(v string) bool {
	return v != "" && v != "dev" && !strings.Contains(v, "dirty")
}
