package config

import (
	"os"
	"path/filepath"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load attempts to load the configuration.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil // No config file found, return defaults
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// GetConfigPath returns the path to the configuration file, or empty string
// if not found. Resolution order: compile-time override, GLAZE_CONFIG
// environment variable, a .glazerc in the working directory for dev builds,
// then the XDG config candidates.
func (l *Loader) GetConfigPath() string {
	candidates := make([]string, 0, 4)
	if l.OverridePath != "" {
		candidates = append(candidates, l.OverridePath)
	}
	if env := os.Getenv("GLAZE_CONFIG"); env != "" {
		candidates = append(candidates, env)
	}
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		candidates = append(candidates, filepath.Join(wd, ".glazerc"))
	}
	home, _ := os.UserHomeDir()
	for _, name := range []string{"config.rc", "glaze.rc"} {
		candidates = append(candidates, filepath.Join(home, ".config", "glaze", name))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
