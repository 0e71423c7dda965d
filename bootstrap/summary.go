package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/endpoints/logger"
)

// ComponentStatus is the bootstrap outcome of one component.
type ComponentStatus struct {
	Name    string
	Status  string
	Healthy bool
}

// Detail is a labelled line of the summary, such as the selected backend
// or the listen address.
type Detail struct {
	Key   string
	Value string
}

// Summary collects what happened during startup and renders it once the
// app is ready.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	components      []ComponentStatus
	details         []Detail
}

// NewSummary creates an empty summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackComponent records a component's bootstrap status.
func (s *Summary) TrackComponent(name, status string, healthy bool) {
	s.components = append(s.components, ComponentStatus{Name: name, Status: status, Healthy: healthy})
}

// AddDetail appends a line to the summary. Never pass credentials.
func (s *Summary) AddDetail(key, value string) {
	s.details = append(s.details, Detail{Key: key, Value: value})
}

// Render formats the summary as an indented block.
func (s *Summary) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (started in %s)\n", s.serviceName, s.version, s.startupDuration.Round(time.Millisecond))

	width := 0
	for _, d := range s.details {
		width = max(width, len(d.Key))
	}
	for _, d := range s.details {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, d.Key, d.Value)
	}

	for i, c := range s.components {
		fmt.Fprintf(&b, "  %s %s %s [%s]\n", treePrefix(i, len(s.components)), statusIcon(c.Healthy), c.Name, c.Status)
	}
	return b.String()
}

// Display logs the summary at Info, one field per detail.
func (s *Summary) Display(log *logger.Logger) {
	fields := make(map[string]interface{}, len(s.details)+3)
	fields["service"] = s.serviceName
	fields["version"] = s.version
	fields[logger.FieldDuration] = s.startupDuration.Milliseconds()
	for _, d := range s.details {
		fields[d.Key] = d.Value
	}
	if len(s.components) > 0 {
		names := make([]string, 0, len(s.components))
		for _, c := range s.components {
			names = append(names, c.Name)
		}
		fields["components"] = names
	}
	log.Info("Application started", fields)
	log.Debug(s.Render())
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└─"
	}
	return "├─"
}

func statusIcon(healthy bool) string {
	if healthy {
		return "✓"
	}
	return "✗"
}
