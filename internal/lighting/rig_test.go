package lighting

import (
	"image/color"
	"math"
	"testing"

	"bust-studio/internal/preset"
)

func TestFromPreset_DefaultRig(t *testing.T) {
	r, err := FromPreset(preset.Default().Lights)
	if err != nil {
		t.Fatalf("FromPreset: %v", err)
	}
	main, ok := r.Get("main")
	if !ok || main.Kind != Spot || main.Intensity != 3 {
		t.Fatalf("main=%+v ok=%v", main, ok)
	}
	if fill, _ := r.Get("fill"); fill.Kind != Directional {
		t.Fatalf("fill kind=%v", fill.Kind)
	}
	if len(r.Lights()) != 5 {
		t.Fatalf("len=%d; want 5", len(r.Lights()))
	}
}

func TestFromPreset_SkipsUnknownKind(t *testing.T) {
	r, err := FromPreset([]preset.Light{
		{Name: "a", Kind: "ambient", Intensity: 1},
		{Name: "laser", Kind: "laser"},
	})
	if err == nil {
		t.Fatalf("want error for unknown kind")
	}
	if len(r.Lights()) != 1 {
		t.Fatalf("len=%d; want 1", len(r.Lights()))
	}
}

func TestRig_SetIntensity(t *testing.T) {
	r, _ := FromPreset(preset.Default().Lights)
	if !r.SetIntensity("rim", 1.5) {
		t.Fatalf("SetIntensity(rim) = false")
	}
	if l, _ := r.Get("rim"); l.Intensity != 1.5 {
		t.Fatalf("rim=%v", l.Intensity)
	}
	r.SetIntensity("rim", -3)
	if l, _ := r.Get("rim"); l.Intensity != 0 {
		t.Fatalf("rim=%v; want clamped 0", l.Intensity)
	}
	if r.SetIntensity("nope", 1) {
		t.Fatalf("SetIntensity(nope) = true")
	}
}

func TestParseHexColor(t *testing.T) {
	tcs := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"#888888", color.RGBA{0x88, 0x88, 0x88, 255}, true},
		{"45a049", color.RGBA{0x45, 0xa0, 0x49, 255}, true},
		{"#12", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, false},
	}
	for _, tc := range tcs {
		got, ok := ParseHexColor(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseHexColor(%q)=%v,%v; want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestLight_Cone(t *testing.T) {
	tcs := []struct {
		angle, penumbra float32
		outer, inner    float64
	}{
		{60, 0, 0.5, 0.5},
		{60, 0.5, 0.5, math.Cos(math.Pi / 6)},
		{0, 0, 0, 0},
		{60, 2, 0.5, 1},
	}
	for _, tc := range tcs {
		outer, inner := Light{Angle: tc.angle, Penumbra: tc.penumbra}.Cone()
		if math.Abs(float64(outer)-tc.outer) > 1e-5 || math.Abs(float64(inner)-tc.inner) > 1e-5 {
			t.Fatalf("Cone(%v, %v)=%v,%v; want %v,%v", tc.angle, tc.penumbra, outer, inner, tc.outer, tc.inner)
		}
	}
}
