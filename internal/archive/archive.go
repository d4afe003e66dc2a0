package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
)

// ErrNoMatch is returned when the archive holds no file with a wanted extension.
var ErrNoMatch = errors.New("archive: no matching entry")

// maxEntrySize bounds a single extracted entry.
const maxEntrySize = 256 << 20

// Find returns the first entry of the zip in data whose extension is one of exts (case-insensitive).
// Shallower paths win, then lexical order, so "bust.glb" beats "extras/bust_lod.glb".
// Entries whose path escapes the archive root are ignored.
func Find(data []byte, exts ...string) (name string, body []byte, err error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if errors.Is(err, zip.ErrInsecurePath) && r != nil {
		err = nil // unsafe names are filtered below
	}
	if err != nil {
		return "", nil, fmt.Errorf("archive: %w", err)
	}
	var candidates []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !safeName(f.Name) {
			continue
		}
		ext := strings.ToLower(path.Ext(f.Name))
		for _, e := range exts {
			if ext == strings.ToLower(e) {
				candidates = append(candidates, f)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return "", nil, ErrNoMatch
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := strings.Count(candidates[i].Name, "/"), strings.Count(candidates[j].Name, "/")
		if di != dj {
			return di < dj
		}
		return candidates[i].Name < candidates[j].Name
	})
	f := candidates[0]
	if f.UncompressedSize64 > maxEntrySize {
		return "", nil, fmt.Errorf("archive: %s too large (%d bytes)", f.Name, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return "", nil, fmt.Errorf("archive: %w", err)
	}
	defer rc.Close()
	body, err = io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return "", nil, fmt.Errorf("archive: %w", err)
	}
	return f.Name, body, nil
}

func safeName(name string) bool {
	if strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return false
	}
	clean := path.Clean(name)
	return clean != ".." && !strings.HasPrefix(clean, "../")
}
