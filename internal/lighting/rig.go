// Package lighting holds the studio light rig as plain data. The scene package uploads it to the
// studio shader each frame; control bindings change intensities by name.
package lighting

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"bust-studio/internal/preset"
)

// Kind is the light type.
type Kind int

const (
	Ambient Kind = iota
	Directional
	Spot
)

func (k Kind) String() string {
	switch k {
	case Ambient:
		return "ambient"
	case Directional:
		return "directional"
	case Spot:
		return "spot"
	}
	return "unknown"
}

// ParseKind maps a preset kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ambient":
		return Ambient, nil
	case "directional", "dir":
		return Directional, nil
	case "spot", "spotlight":
		return Spot, nil
	}
	return 0, fmt.Errorf("lighting: unknown kind %q", s)
}

// Light is one studio light. Color channels are 0..1.
type Light struct {
	Name      string
	Kind      Kind
	Position  [3]float32
	Color     [3]float32
	Intensity float32
	Angle     float32 // cone half-angle, degrees (spot)
	Penumbra  float32 // 0..1 share of the cone that fades (spot)
	Decay     float32
	Distance  float32 // 0 = unlimited
}

// Cone returns the cosines of the outer cone edge and of the angle where the penumbra ends.
// A spot is fully lit inside inner and dark outside outer.
func (l Light) Cone() (outer, inner float32) {
	angle := l.Angle
	if angle <= 0 || angle > 90 {
		angle = 90
	}
	p := l.Penumbra
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	rad := angle * math32.Pi / 180
	return math32.Cos(rad), math32.Cos(rad * (1 - p))
}

// Rig is an ordered set of named lights.
type Rig struct {
	lights []*Light
}

// FromPreset builds the rig. Lights with an unknown kind are skipped and reported in the error,
// the remaining lights are still returned.
func FromPreset(defs []preset.Light) (*Rig, error) {
	r := &Rig{}
	var bad []string
	for _, d := range defs {
		kind, err := ParseKind(d.Kind)
		if err != nil {
			bad = append(bad, d.Name)
			continue
		}
		c := [3]float32{1, 1, 1}
		if d.Color != "" {
			if rgba, ok := ParseHexColor(d.Color); ok {
				c = [3]float32{float32(rgba.R) / 255, float32(rgba.G) / 255, float32(rgba.B) / 255}
			}
		}
		intensity := d.Intensity
		if intensity < 0 {
			intensity = 0
		}
		r.lights = append(r.lights, &Light{
			Name:      d.Name,
			Kind:      kind,
			Position:  d.Position,
			Color:     c,
			Intensity: intensity,
			Angle:     d.Angle,
			Penumbra:  d.Penumbra,
			Decay:     d.Decay,
			Distance:  d.Distance,
		})
	}
	if len(bad) > 0 {
		return r, fmt.Errorf("lighting: skipped lights with unknown kind: %s", strings.Join(bad, ", "))
	}
	return r, nil
}

// Lights returns the lights in preset order.
func (r *Rig) Lights() []*Light {
	return r.lights
}

// Get returns the light called name.
func (r *Rig) Get(name string) (*Light, bool) {
	for _, l := range r.lights {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// SetIntensity sets a light's intensity (negative values become 0). Returns false if no such light.
func (r *Rig) SetIntensity(name string, v float32) bool {
	l, ok := r.Get(name)
	if !ok {
		return false
	}
	if v < 0 {
		v = 0
	}
	l.Intensity = v
	return true
}

// ParseHexColor parses #RGB or #RRGGBB (alpha 255).
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		n, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return color.RGBA{}, false
		}
		r, g, b := uint8(n>>8&0xf), uint8(n>>4&0xf), uint8(n&0xf)
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}, true
	case 6:
		n, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return color.RGBA{}, false
		}
		return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}, true
	}
	return color.RGBA{}, false
}
