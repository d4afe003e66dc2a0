// Package snapshot writes captured frames to disk as WebP.
package snapshot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/anthonynsimon/bild/transform"
)

// Path returns the file name a snapshot taken at now is saved under.
func Path(dir string, now time.Time) string {
	return filepath.Join(dir, "studio-"+now.Format("20060102-150405")+".webp")
}

// Downsize scales img to maxWidth keeping the aspect ratio. Images already narrow enough, and
// maxWidth <= 0, are returned unchanged.
func Downsize(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxWidth <= 0 || w <= maxWidth || w == 0 {
		return img
	}
	nh := h * maxWidth / w
	if nh < 1 {
		nh = 1
	}
	return transform.Resize(img, maxWidth, nh, transform.Linear)
}

// Save downsizes img and encodes it to path, creating the directory.
func Save(img image.Image, path string, maxWidth int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := nativewebp.Encode(f, Downsize(img, maxWidth), nil); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
