// Package preset describes the fixed parts of the scene (camera, renderer, lights, orbit ring and
// model asset paths) in YAML. Anything the user can tune at runtime lives in internal/settings instead.
package preset

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the preset file looked up relative to the working directory.
const DefaultPath = "config/scene.yaml"

//go:embed default.yaml
var defaultYAML []byte

// Camera is the perspective camera and its orbit-control limits.
type Camera struct {
	FovY        float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Position    [3]float32 `yaml:"position"`
	Target      [3]float32 `yaml:"target"`
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
	Damping     float32    `yaml:"damping"`
}

// Renderer holds framebuffer and tone-mapping options.
type Renderer struct {
	Antialias   bool    `yaml:"antialias"`
	Transparent bool    `yaml:"transparent"`
	Exposure    float32 `yaml:"exposure"`
	Background  string  `yaml:"background"`
	TargetFPS   int     `yaml:"target_fps"`
	Title       string  `yaml:"title"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
}

// Light is one studio light. Kind is "ambient", "directional" or "spot".
type Light struct {
	Name      string     `yaml:"name"`
	Kind      string     `yaml:"kind"`
	Position  [3]float32 `yaml:"position,omitempty"`
	Color     string     `yaml:"color,omitempty"`
	Intensity float32    `yaml:"intensity"`
	Angle     float32    `yaml:"angle,omitempty"` // spot cone half-angle, degrees
	Penumbra  float32    `yaml:"penumbra,omitempty"`
	Decay     float32    `yaml:"decay,omitempty"`
	Distance  float32    `yaml:"distance,omitempty"`
}

// Orbit lays out the ring of decorative spheres.
type Orbit struct {
	Count          int     `yaml:"count"`
	Radius         float32 `yaml:"radius"`
	Speed          float32 `yaml:"speed"`
	SphereRadius   float32 `yaml:"sphere_radius"`
	VerticalCenter float32 `yaml:"vertical_center"`
	BobAmplitude   float32 `yaml:"bob_amplitude"`
	BobSpeed       float32 `yaml:"bob_speed"`
	SpinSpeed      float32 `yaml:"spin_speed"`
	HoverSpinSpeed float32 `yaml:"hover_spin_speed"`
	HoverEase      float32 `yaml:"hover_ease"`
	Metalness      float32 `yaml:"metalness"`
	Roughness      float32 `yaml:"roughness"`
	Color          string  `yaml:"color"`
}

// Sway is the bust's head animation.
type Sway struct {
	Active    bool    `yaml:"active"`
	Speed     float32 `yaml:"speed"`
	Amplitude float32 `yaml:"amplitude"`
}

// Bust is the focal model and its responsive fit.
type Bust struct {
	Paths       []string `yaml:"paths"`
	BaseScale   float32  `yaml:"base_scale"`
	FitFraction float32  `yaml:"fit_fraction"`
	Metalness   float32  `yaml:"metalness"`
	Sway        Sway     `yaml:"sway"`
}

// Bottle optionally replaces one ring slot with a decorative model.
type Bottle struct {
	Paths []string `yaml:"paths"`
	Slot  int      `yaml:"slot"`
	Scale float32  `yaml:"scale"`
}

// Scene is the whole preset.
type Scene struct {
	Camera   Camera   `yaml:"camera"`
	Renderer Renderer `yaml:"renderer"`
	Lights   []Light  `yaml:"lights"`
	Orbit    Orbit    `yaml:"orbit"`
	Bust     Bust     `yaml:"bust"`
	Bottle   Bottle   `yaml:"bottle"`
	Skybox   []string `yaml:"skybox"`
	HUDFonts []string `yaml:"hud_fonts"`
	HUDCSS   string   `yaml:"hud_css"` // replaces the built-in HUD stylesheet when set
}

// Default returns the embedded preset.
func Default() Scene {
	var s Scene
	if err := yaml.Unmarshal(defaultYAML, &s); err != nil {
		panic(fmt.Sprintf("preset: embedded default.yaml: %v", err))
	}
	return s
}

// Load reads the preset at path over the embedded default: keys present in the file replace the
// default's, absent keys keep it. A missing file yields Default() with no error; a file that does
// not parse yields Default() and the parse error so the caller can warn.
func Load(path string) (Scene, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("preset: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("preset: parse %s: %w", path, err)
	}
	s.normalize()
	return s, nil
}

// BottleEnabled reports whether a bottle model should replace a ring slot.
func (s Scene) BottleEnabled() bool {
	return len(s.Bottle.Paths) > 0 && s.Bottle.Slot >= 0 && s.Bottle.Slot < s.Orbit.Count
}

// normalize repairs values that would break the scene.
func (s *Scene) normalize() {
	d := Default()
	if s.Camera.FovY <= 0 || s.Camera.FovY >= 180 {
		s.Camera.FovY = d.Camera.FovY
	}
	if s.Camera.Near <= 0 {
		s.Camera.Near = d.Camera.Near
	}
	if s.Camera.Far <= s.Camera.Near {
		s.Camera.Far = d.Camera.Far
	}
	if s.Camera.MaxDistance > 0 && s.Camera.MinDistance > s.Camera.MaxDistance {
		s.Camera.MinDistance, s.Camera.MaxDistance = s.Camera.MaxDistance, s.Camera.MinDistance
	}
	if s.Orbit.Count < 0 {
		s.Orbit.Count = 0
	}
	if s.Bust.BaseScale <= 0 {
		s.Bust.BaseScale = d.Bust.BaseScale
	}
	if s.Bust.FitFraction <= 0 || s.Bust.FitFraction > 1 {
		s.Bust.FitFraction = d.Bust.FitFraction
	}
	if s.Renderer.TargetFPS <= 0 {
		s.Renderer.TargetFPS = d.Renderer.TargetFPS
	}
	if s.Renderer.Exposure <= 0 {
		s.Renderer.Exposure = d.Renderer.Exposure
	}
}
