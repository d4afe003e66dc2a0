// Package server serves the project directory over HTTP and hosts the control socket.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/netutil"

	"bust-studio/internal/logger"
)

//go:embed static/index.html
var staticFS embed.FS

// Cache-Control values. Everything static is cached for a year; node_modules never changes in place.
const (
	cacheYear      = "public, max-age=31536000"
	cacheImmutable = "public, max-age=31536000, immutable"
)

// Options configures the server.
type Options struct {
	Root     string // directory served as /
	Addr     string
	MaxConns int // 0 = unlimited
}

// Server is the static file server plus the control socket.
type Server struct {
	opts Options
	hub  *Hub
	log  *logger.Logger
	mux  *http.ServeMux
}

// New builds the routes. hub may be nil, in which case /ws is not served.
func New(opts Options, hub *Hub, log *logger.Logger) *Server {
	if opts.Root == "" {
		opts.Root = "."
	}
	if log == nil {
		log = logger.New("")
	}
	s := &Server{opts: opts, hub: hub, log: log, mux: http.NewServeMux()}
	files := http.FileServer(noListFS{http.Dir(opts.Root)})

	s.mux.HandleFunc("GET /{$}", s.serveHome)
	s.mux.HandleFunc("GET /favicon.ico", s.serveFile("favicon.ico"))
	s.mux.HandleFunc("GET /design-system", s.serveFile(filepath.Join("Design System", "index.html")))
	s.mux.Handle("GET /node_modules/", cacheControl(cacheImmutable, files))
	s.mux.Handle("GET /", cacheControl(cacheYear, files))
	if hub != nil {
		s.mux.HandleFunc("GET /ws", hub.ServeWS)
	}
	return s
}

// Handler returns the root handler with CORS and MIME fix-ups applied.
func (s *Server) Handler() http.Handler {
	return cors(mimeFixups(s.mux))
}

// Serve listens on Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	l, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return s.ServeListener(ctx, l)
}

// ServeListener is Serve on an existing listener.
func (s *Server) ServeListener(ctx context.Context, l net.Listener) error {
	if s.opts.MaxConns > 0 {
		l = netutil.LimitListener(l, s.opts.MaxConns)
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warnf("server: shutdown: %v", err)
		}
	}()
	s.log.Infof("server: listening on http://%s (root %s)", l.Addr(), s.opts.Root)
	err := srv.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return fmt.Errorf("server: %w", err)
}

// serveHome serves <root>/index.html, or the built-in control panel when the root has none.
func (s *Server) serveHome(w http.ResponseWriter, r *http.Request) {
	p := filepath.Join(s.opts.Root, "index.html")
	if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
		http.ServeFile(w, r, p)
		return
	}
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "control panel missing", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) serveFile(rel string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := filepath.Join(s.opts.Root, rel)
		fi, err := os.Stat(p)
		if err != nil || fi.IsDir() {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", cacheYear)
		http.ServeFile(w, r, p)
	}
}

func cacheControl(value string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", value)
		next.ServeHTTP(w, r)
	})
}

// mimeFixups forces icon types; some platforms map .ico to nothing useful.
func mimeFixups(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := strings.ToLower(r.URL.Path)
		switch {
		case strings.HasSuffix(p, ".ico"):
			w.Header().Set("Content-Type", "image/x-icon")
		case strings.HasSuffix(p, ".png") && strings.Contains(path.Base(p), "favicon"):
			w.Header().Set("Content-Type", "image/png")
		}
		next.ServeHTTP(w, r)
	})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// noListFS hides directories that have no index.html.
type noListFS struct {
	fs http.FileSystem
}

func (n noListFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.IsDir() {
		index, err := n.fs.Open(path.Join(name, "index.html"))
		if err != nil {
			f.Close()
			return nil, os.ErrNotExist
		}
		index.Close()
	}
	return f, nil
}
