package download

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func TestFetch_ReportsProgressAndExtension(t *testing.T) {
	body := strings.Repeat("x", 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "model/gltf-binary")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Write([]byte(body))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	var last, total int64
	meta, err := Fetch(context.Background(), srv.Client(), srv.URL+"/bust", &buf, func(done, tot int64) {
		last, total = done, tot
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if buf.String() != body {
		t.Fatalf("body length=%d; want %d", buf.Len(), len(body))
	}
	if meta.Ext != ".glb" || meta.Size != int64(len(body)) {
		t.Fatalf("meta=%+v", meta)
	}
	if last != int64(len(body)) || total != int64(len(body)) {
		t.Fatalf("progress=%d/%d", last, total)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err := Fetch(context.Background(), srv.Client(), srv.URL+"/missing.glb", &bytes.Buffer{}, nil)
	if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Fatalf("err=%v; want HTTP 404", err)
	}
}

func TestExtension(t *testing.T) {
	tcs := []struct {
		ct, url, want string
	}{
		{"model/gltf-binary", "http://x/a", ".glb"},
		{"application/zip; charset=binary", "http://x/a", ".zip"},
		{"application/octet-stream", "http://x/a/busto.GLB?v=2", ".glb"},
		{"", "http://x/a/scene.gltf#frag", ".gltf"},
		{"", "http://x/a/readme.txt", ""},
	}
	for _, tc := range tcs {
		got := extensionFromContentType(tc.ct)
		if got == "" {
			got = extensionFromURL(tc.url)
		}
		if got != tc.want {
			t.Fatalf("ext(%q, %q)=%q; want %q", tc.ct, tc.url, got, tc.want)
		}
	}
}
