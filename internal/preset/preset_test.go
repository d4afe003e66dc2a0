package preset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_MatchesStudioLayout(t *testing.T) {
	s := Default()
	if s.Camera.FovY != 45 || s.Camera.Position != [3]float32{0, 0, 15} {
		t.Fatalf("camera=%+v", s.Camera)
	}
	if s.Orbit.Count != 6 || s.Orbit.Radius != 5 || s.Orbit.Speed != 0.2 {
		t.Fatalf("orbit=%+v", s.Orbit)
	}
	names := map[string]bool{}
	for _, l := range s.Lights {
		names[l.Name] = true
	}
	for _, want := range []string{"ambient", "main", "fill", "rim", "back"} {
		if !names[want] {
			t.Fatalf("missing light %q", want)
		}
	}
	if len(s.Bust.Paths) != 3 {
		t.Fatalf("bust paths=%v; want 3 candidates", s.Bust.Paths)
	}
	if s.BottleEnabled() {
		t.Fatalf("bottle enabled by default")
	}
}

func TestLoad_OverlaysFileOnDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	content := "orbit:\n  count: 8\nbottle:\n  paths: [assets/models/bottle.glb]\n  slot: 3\ncamera:\n  fov: 500\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Orbit.Count != 8 {
		t.Fatalf("count=%d; want 8", s.Orbit.Count)
	}
	if s.Orbit.Radius != 5 {
		t.Fatalf("radius=%v; want default 5 kept", s.Orbit.Radius)
	}
	if s.Camera.FovY != 45 {
		t.Fatalf("fov=%v; want repaired to 45", s.Camera.FovY)
	}
	if !s.BottleEnabled() {
		t.Fatalf("bottle not enabled")
	}
	if s.HUDCSS != "" {
		t.Fatalf("hud_css=%q; want empty default kept", s.HUDCSS)
	}
}

func TestLoad_MissingAndBroken(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "none.yaml")); err != nil {
		t.Fatalf("Load(missing): %v", err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("orbit: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(bad)
	if err == nil {
		t.Fatalf("Load(bad): want error")
	}
	if s.Orbit.Count != Default().Orbit.Count {
		t.Fatalf("Load(bad) did not fall back to default")
	}
}
