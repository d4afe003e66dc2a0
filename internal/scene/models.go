package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"bust-studio/internal/assets"
)

// model is a loaded glTF recentred on its bounding-box centre.
type model struct {
	m      rl.Model
	center rl.Vector3
	height float32
	scale  float32
}

func (m *model) draw(pos rl.Vector3, rot rl.Matrix, scale float32) {
	m.m.Transform = rl.MatrixMultiply(rl.MatrixTranslate(-m.center.X, -m.center.Y, -m.center.Z), rot)
	rl.DrawModelEx(m.m, pos, rl.NewVector3(0, 1, 0), 0, rl.NewVector3(scale, scale, scale), rl.White)
}

func (m *model) unload() {
	if m != nil {
		rl.UnloadModel(m.m)
	}
}

// AttachBust uploads the bust and marks it loaded in the App, which fits it to the viewport.
func (s *Scene) AttachBust(a *assets.Asset) error {
	m, err := s.load("bust", a)
	if err != nil {
		return err
	}
	s.bust.unload()
	s.bust = m
	s.app.SetBustLoaded(m.height)
	return nil
}

// AttachBottle uploads the bottle model; its ring slot stops drawing a sphere.
func (s *Scene) AttachBottle(a *assets.Asset) error {
	m, err := s.load("bottle", a)
	if err != nil {
		return err
	}
	s.bottle.unload()
	s.bottle = m
	s.app.BottleLoaded = true
	s.log.Infof("scene: bottle replaces the sphere in ring slot %d", s.app.Bottle())
	return nil
}

// load writes the asset into the cache directory (raylib loads models from files) and uploads it.
func (s *Scene) load(kind string, a *assets.Asset) (*model, error) {
	if a == nil {
		return nil, errors.New("scene: nil asset")
	}
	s.init()
	dir := s.cacheDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("scene: cache dir: %w", err)
	}
	path := filepath.Join(dir, kind+"-"+a.Name)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return nil, fmt.Errorf("scene: cache %s: %w", kind, err)
	}
	rm := rl.LoadModel(path)
	if rm.MeshCount == 0 {
		rl.UnloadModel(rm)
		return nil, fmt.Errorf("scene: %s %s: no meshes uploaded", kind, a.Path)
	}
	if s.litOK {
		mtl := rm.GetMaterials()
		for i := range mtl {
			mtl[i].Shader = s.lit.shader
		}
	}
	bb := rl.GetModelBoundingBox(rm)
	m := &model{
		m: rm,
		center: rl.NewVector3(
			(bb.Min.X+bb.Max.X)/2,
			(bb.Min.Y+bb.Max.Y)/2,
			(bb.Min.Z+bb.Max.Z)/2,
		),
		height: bb.Max.Y - bb.Min.Y,
	}
	s.log.Infof("scene: %s uploaded from %s (%d meshes, height %.3f)", kind, a.Path, rm.MeshCount, m.height)
	return m, nil
}
