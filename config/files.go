package config

import (
	"os"

	"github.com/joho/godotenv"
)

// FileSystem abstracts the two file operations the loader needs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem reads from the local disk.
type OSFileSystem struct{}

func (OSFileSystem) Exists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// LoadEnv exports the file's variables into the process environment.
// Variables that are already set keep their value.
func (OSFileSystem) LoadEnv(p string) error {
	return godotenv.Load(p)
}

// ResolvedFiles names the files a load will read. Either may be empty.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// Resolver locates config.yml and .env files relative to the working
// directory, so the host can be started from the repo root or from cmd/.
type Resolver struct {
	FileSystem FileSystem
}

// ResolveFiles keeps explicit paths from opts and searches for the rest.
func (r *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	files := ResolvedFiles{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile}
	if files.ConfigFile == "" {
		files.ConfigFile = r.first(configCandidates(serviceName))
	}
	if files.EnvFile == "" {
		files.EnvFile = r.first(envCandidates(serviceName))
	}
	return files
}

func (r *Resolver) first(candidates []string) string {
	for _, c := range candidates {
		if r.FileSystem.Exists(c) {
			return c
		}
	}
	return ""
}

// searchDirs lists the directories probed, most specific first.
func searchDirs(serviceName string) []string {
	var dirs []string
	if serviceName != "" {
		dirs = append(dirs, "./cmd/"+serviceName, "../cmd/"+serviceName)
	}
	return append(dirs, "./config", "../config", ".")
}

func configCandidates(serviceName string) []string {
	var out []string
	for _, dir := range searchDirs(serviceName) {
		out = append(out, dir+"/config.yml")
	}
	return out
}

// envCandidates prefers .env.<service> anywhere over a plain .env.
func envCandidates(serviceName string) []string {
	names := []string{".env"}
	if serviceName != "" {
		names = []string{".env." + serviceName, ".env"}
	}
	dirs := append(searchDirs(serviceName), "..")

	var out []string
	for _, name := range names {
		out = append(out, name)
		for _, dir := range dirs {
			out = append(out, dir+"/"+name)
		}
	}
	return out
}
