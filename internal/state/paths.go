package state

import (
	"path/filepath"
	"strings"
)

// abbreviateHome replaces a leading home directory with "~". Only whole path
// components match, so /home/alice2 is left alone when home is /home/alice.
func abbreviateHome(dir, home string) string {
	dir = filepath.Clean(dir)
	if home == "" {
		return dir
	}
	home = filepath.Clean(home)
	if home == "/" {
		return dir
	}

	if dir == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(dir, home+"/"); ok {
		return "~/" + rest
	}
	return dir
}
