// Package fonts finds font files for the HUD and console.
package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exts are the extensions treated as font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns the directories scanned for fonts, relative to the working directory.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns the paths of all font files under dir, relative to dir and slash-separated.
// A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Candidates returns preferred followed by every font found under dirs, without duplicates.
// Among the scanned files, "Regular" faces come first.
func Candidates(preferred []string, dirs ...string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range preferred {
		add(p)
	}
	var regular, other []string
	for _, dir := range dirs {
		list, err := ScanDir(dir)
		if err != nil {
			continue
		}
		for _, rel := range list {
			full := filepath.Join(dir, filepath.FromSlash(rel))
			if strings.Contains(strings.ToLower(rel), "regular") {
				regular = append(regular, full)
			} else {
				other = append(other, full)
			}
		}
	}
	for _, p := range regular {
		add(p)
	}
	for _, p := range other {
		add(p)
	}
	return out
}
