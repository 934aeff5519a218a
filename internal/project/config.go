// Package project loads the optional sdlc.toml project file that supplies
// default CLI flag values (spec.md §6), mirroring the teacher's
// surge.toml project-manifest handling in cmd/surge/project_manifest.go
// and internal/project/modules.go.
package project

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// BuildConfig is the [build] table of sdlc.toml.
type BuildConfig struct {
	Align     int      `toml:"align"`
	Languages []string `toml:"languages"`
	Comments  bool      `toml:"comments"`
	Member    bool      `toml:"member"`
	Suppress  string    `toml:"suppress"` // "", "prefix", or "tag"
}

// Config is the full parsed sdlc.toml.
type Config struct {
	Build BuildConfig `toml:"build"`
}

// Load parses the manifest at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromDir finds and loads sdlc.toml starting at dir, walking upward.
// Returns (nil, false, nil) when no manifest exists.
func LoadFromDir(dir string) (*Config, bool, error) {
	path, ok, err := FindManifest(dir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}
