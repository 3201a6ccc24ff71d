// Package config loads the layered pulse configuration: built-in defaults,
// then the system file, then the user file, then an explicit --config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.yaml.in/yaml/v3"

	"github.com/juliankahlert/pulse/internal/palette"
	"github.com/juliankahlert/pulse/internal/types"
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("config file not found")
	ErrInvalid  = errors.New("invalid config")
)

// SegmentConfig sets the color of one prompt segment.
type SegmentConfig struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color,omitempty"` // clrs.cc palette name, e.g. "Blue"
}

// Config is the merged pulse configuration.
type Config struct {
	Segments []SegmentConfig `yaml:"segments"`
	Mode     string          `yaml:"mode,omitempty"`

	// sources lists the files merged into this config (not serialized).
	sources []string `yaml:"-"`
}

// Paths are the files Load reads. Empty entries are skipped.
type Paths struct {
	Global   string
	User     string
	Explicit string // must exist when set
}

// DefaultPaths returns the system and per-user locations.
func DefaultPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("getting home directory: %w", err)
	}
	return Paths{
		Global: GlobalPath,
		User:   filepath.Join(home, UserRelPath),
	}, nil
}

// Files returns the existing-or-not candidate files in merge order.
func (p Paths) Files() []string {
	var files []string
	for _, f := range []string{p.Global, p.User, p.Explicit} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// Load merges every configuration file in p over the defaults. Missing
// global or user files are skipped; a missing explicit file is an error.
// Each file is validated on its own before it is merged.
func Load(p Paths) (*Config, error) {
	cfg := NewDefault()

	for _, path := range []string{p.Global, p.User} {
		if path == "" {
			continue
		}
		layer, err := ReadFile(path)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		cfg.Merge(layer)
	}

	if p.Explicit != "" {
		layer, err := ReadFile(p.Explicit)
		if err != nil {
			return nil, err
		}
		cfg.Merge(layer)
	}

	return cfg, nil
}

// ReadFile parses and validates a single configuration file.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.sources = []string{path}
	return &cfg, nil
}

// Validate checks segment names, colors and the display mode.
func (c *Config) Validate() error {
	for _, s := range c.Segments {
		if !slices.Contains(SegmentNames, s.Name) {
			return fmt.Errorf("%w: invalid segment name %q", ErrInvalid, s.Name)
		}
		if s.Color == "" {
			continue
		}
		if _, err := palette.Parse(s.Color); err != nil {
			return fmt.Errorf("%w: segment %q: %w", ErrInvalid, s.Name, err)
		}
	}
	if _, err := types.ParseDisplayMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Merge overlays other onto c. Segments are matched by name; a segment in
// other replaces the one in c, new segments are appended. A non-empty mode
// in other wins.
func (c *Config) Merge(other *Config) {
	for _, seg := range other.Segments {
		i := slices.IndexFunc(c.Segments, func(s SegmentConfig) bool { return s.Name == seg.Name })
		if i >= 0 {
			c.Segments[i] = seg
		} else {
			c.Segments = append(c.Segments, seg)
		}
	}
	if other.Mode != "" {
		c.Mode = other.Mode
	}
	c.sources = append(c.sources, other.sources...)
}

// Sources returns the files that contributed to c, in merge order.
func (c *Config) Sources() []string {
	return c.sources
}

// Color returns the configured color for a segment, falling back to the
// segment's default and then to White.
func (c *Config) Color(name string) palette.Name {
	for _, s := range c.Segments {
		if s.Name != name || s.Color == "" {
			continue
		}
		if n, err := palette.Parse(s.Color); err == nil {
			return n
		}
	}
	if n, ok := defaultColors[name]; ok {
		return n
	}
	return fallbackName
}

// Colors returns the color of every prompt segment.
func (c *Config) Colors() palette.Colors {
	return palette.Colors{
		User: c.Color(SegmentUsername),
		Host: c.Color(SegmentHostname),
		Dir:  c.Color(SegmentDir),
		Repo: c.Color(SegmentGit),
	}
}

// DisplayMode returns the configured mode, DualLine when unset.
func (c *Config) DisplayMode() types.DisplayMode {
	mode, err := types.ParseDisplayMode(c.Mode)
	if err != nil {
		return types.ModeDualLine
	}
	return mode
}
