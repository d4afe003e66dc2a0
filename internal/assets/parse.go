package assets

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/qmuntal/gltf"

	"bust-studio/internal/archive"
)

// ErrUnsupported is returned for payloads that are neither binary glTF nor a zip holding one.
var ErrUnsupported = errors.New("assets: unsupported model format")

// ErrNoMeshes is returned for a glTF document without geometry.
var ErrNoMeshes = errors.New("assets: model has no meshes")

var glbMagic = []byte("glTF")

// Asset is a parsed model ready for GPU upload.
type Asset struct {
	Path   string // candidate path it came from
	Name   string // file name to use when writing it to the cache
	Data   []byte // binary glTF
	Meshes int
	Nodes  int
}

// Parse validates payload as a model. Zip payloads are searched for their first .glb entry.
func Parse(p string, payload Payload) (*Asset, error) {
	name := baseName(p)
	ext := payload.Ext
	if ext == "" && bytes.HasPrefix(payload.Data, glbMagic) {
		ext = ".glb"
	}
	switch ext {
	case ".zip":
		entry, body, err := archive.Find(payload.Data, ".glb")
		if err != nil {
			return nil, fmt.Errorf("assets: %s: %w", p, err)
		}
		a, err := parseGLB(p, body)
		if err != nil {
			return nil, err
		}
		a.Name = baseName(entry)
		return a, nil
	case ".glb":
		a, err := parseGLB(p, payload.Data)
		if err != nil {
			return nil, err
		}
		a.Name = name
		return a, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, p)
}

func parseGLB(p string, data []byte) (*Asset, error) {
	if !bytes.HasPrefix(data, glbMagic) {
		return nil, fmt.Errorf("assets: %s: not a binary glTF", p)
	}
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("assets: %s: %w", p, err)
	}
	if len(doc.Meshes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMeshes, p)
	}
	return &Asset{Path: p, Data: data, Meshes: len(doc.Meshes), Nodes: len(doc.Nodes)}, nil
}

func baseName(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	if p == "" {
		return "model.glb"
	}
	if !strings.HasSuffix(strings.ToLower(p), ".glb") {
		p = strings.TrimSuffix(p, ".zip") + ".glb"
	}
	return p
}
