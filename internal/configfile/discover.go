// Package configfile implements upward-directory-walk discovery and
// multi-format parsing of a "kreuzberg.{toml,yaml,yml,json}" project config
// file, overlaid onto the caller's base ExtractionConfig (§6).
package configfile

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// candidateNames are checked, in order, within each directory visited.
var candidateNames = []string{
	"kreuzberg.toml",
	"kreuzberg.yaml",
	"kreuzberg.yml",
	"kreuzberg.json",
}

// Discover walks upward from startDir (inclusive) to the filesystem root,
// returning the first matching config file path found, or "" if none exists.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		entries, err := os.ReadDir(dir)
		if err != nil {
			entries = nil // unreadable directory: treat as "no config here", keep climbing
		}
		for _, name := range candidateNames {
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				matched, err := doublestar.Match(name, e.Name())
				if err == nil && matched {
					return filepath.Join(dir, e.Name()), nil
				}
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
