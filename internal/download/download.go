package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
)

const defaultUserAgent = "bust-studio/1.0 (+model loader)"

// Meta describes a finished transfer.
type Meta struct {
	ContentType string
	Ext         string // from Content-Type, then the URL path; "" when unknown
	Size        int64
}

// ProgressFunc receives bytes written so far and the expected total (-1 when unknown).
type ProgressFunc func(done, total int64)

// Fetch GETs url and copies the body to w, reporting progress as bytes arrive.
// There is no client timeout; cancel ctx to abandon a stalled transfer.
func Fetch(ctx context.Context, client *http.Client, url string, w io.Writer, progress ProgressFunc) (Meta, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Meta{}, fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return Meta{}, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Meta{}, fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}
	meta := Meta{ContentType: resp.Header.Get("Content-Type")}
	meta.Ext = extensionFromContentType(meta.ContentType)
	if meta.Ext == "" {
		meta.Ext = extensionFromURL(url)
	}
	cw := &countingWriter{w: w, total: resp.ContentLength, progress: progress}
	if progress != nil {
		progress(0, resp.ContentLength)
	}
	n, err := io.Copy(cw, resp.Body)
	meta.Size = n
	if err != nil {
		return meta, fmt.Errorf("download: %w", err)
	}
	return meta, nil
}

type countingWriter struct {
	w        io.Writer
	done     int64
	total    int64
	progress ProgressFunc
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.done += int64(n)
	if c.progress != nil {
		c.progress(c.done, c.total)
	}
	return n, err
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case ct == "model/gltf-binary":
		return ".glb"
	case ct == "model/gltf+json":
		return ".gltf"
	case strings.Contains(ct, "zip"):
		return ".zip"
	}
	return ""
}

func extensionFromURL(url string) string {
	p := url
	if idx := strings.IndexAny(p, "?#"); idx >= 0 {
		p = p[:idx]
	}
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".glb", ".gltf", ".zip":
		return ext
	}
	return ""
}
