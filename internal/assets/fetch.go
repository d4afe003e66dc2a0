package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"bust-studio/internal/download"
)

// Payload is the raw bytes of one candidate path.
type Payload struct {
	Data []byte
	Ext  string // lower-case extension with dot, "" when unknown
}

// Fetcher retrieves the bytes behind a candidate path.
type Fetcher interface {
	Fetch(ctx context.Context, path string, progress download.ProgressFunc) (Payload, error)
}

// Source fetches http(s) URLs over the network and everything else from files under Root.
// A leading "/" is root-relative, as it would be for a browser.
type Source struct {
	Root   string
	Client *http.Client
}

// Fetch implements Fetcher.
func (s Source) Fetch(ctx context.Context, p string, progress download.ProgressFunc) (Payload, error) {
	if isURL(p) {
		var buf bytes.Buffer
		meta, err := download.Fetch(ctx, s.Client, p, &buf, progress)
		if err != nil {
			return Payload{}, err
		}
		return Payload{Data: buf.Bytes(), Ext: meta.Ext}, nil
	}
	return s.fetchFile(ctx, p, progress)
}

func (s Source) fetchFile(ctx context.Context, p string, progress download.ProgressFunc) (Payload, error) {
	rel := strings.TrimPrefix(filepath.ToSlash(p), "/")
	full := filepath.Join(s.Root, filepath.FromSlash(rel))
	f, err := os.Open(full)
	if err != nil {
		return Payload{}, fmt.Errorf("assets: %w", err)
	}
	defer f.Close()
	total := int64(-1)
	if fi, err := f.Stat(); err == nil {
		if fi.IsDir() {
			return Payload{}, fmt.Errorf("assets: %s is a directory", full)
		}
		total = fi.Size()
	}
	var buf bytes.Buffer
	if total > 0 {
		buf.Grow(int(total))
	}
	r := &progressReader{ctx: ctx, r: f, total: total, progress: progress}
	if progress != nil {
		progress(0, total)
	}
	if _, err := io.Copy(&buf, r); err != nil {
		return Payload{}, fmt.Errorf("assets: %w", err)
	}
	return Payload{Data: buf.Bytes(), Ext: strings.ToLower(path.Ext(rel))}, nil
}

type progressReader struct {
	ctx      context.Context
	r        io.Reader
	done     int64
	total    int64
	progress download.ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := p.r.Read(b)
	p.done += int64(n)
	if n > 0 && p.progress != nil {
		p.progress(p.done, p.total)
	}
	return n, err
}

func isURL(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
