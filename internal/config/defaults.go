package config

import "github.com/juliankahlert/pulse/internal/palette"

// Segment names accepted in configuration files.
const (
	SegmentUsername = "username"
	SegmentHostname = "hostname"
	SegmentDir      = "current_directory"
	SegmentGit      = "git_branch"
)

// Locations searched by Load, lowest priority first.
const (
	GlobalPath   = "/etc/pulse/config.yaml"
	UserRelPath  = ".config/pulse/config.yaml"
	DefaultMode  = "DualLine"
	fallbackName = palette.White
)

// SegmentNames lists the valid segment names in display order.
var SegmentNames = []string{SegmentUsername, SegmentHostname, SegmentDir, SegmentGit}

// defaultColors are used for segments the configuration leaves uncolored.
var defaultColors = map[string]palette.Name{
	SegmentUsername: palette.Blue,
	SegmentHostname: palette.Green,
	SegmentDir:      palette.Silver,
	SegmentGit:      palette.Red,
}

// NewDefault returns the built-in configuration.
func NewDefault() *Config {
	segments := make([]SegmentConfig, 0, len(SegmentNames))
	for _, name := range SegmentNames {
		segments = append(segments, SegmentConfig{Name: name, Color: string(defaultColors[name])})
	}
	return &Config{
		Segments: segments,
		Mode:     DefaultMode,
	}
}
