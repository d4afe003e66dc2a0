package layout

import (
	"errors"
	"math"
	"testing"
)

func TestViewport_AspectExact(t *testing.T) {
	tcs := []Viewport{{1920, 1080}, {800, 600}, {375, 812}, {1, 1}, {3000, 7}}
	for _, vp := range tcs {
		want := float32(vp.Width) / float32(vp.Height)
		if got := vp.Aspect(); got != want {
			t.Fatalf("Aspect(%v)=%v; want %v", vp, got, want)
		}
	}
	if got := (Viewport{640, 0}).Aspect(); got != 640 {
		t.Fatalf("Aspect(640x0)=%v; want 640", got)
	}
}

func TestFit_BaseScale(t *testing.T) {
	f := Fit{FovY: 45, Distance: 15, Fraction: 0.6}
	vh := 2 * 15 * math.Tan(45*math.Pi/360)
	s, err := f.BaseScale(Viewport{1600, 900}, 0.5)
	if err != nil {
		t.Fatalf("BaseScale: %v", err)
	}
	want := 0.6 * vh / 0.5
	if math.Abs(float64(s)-want) > 1e-3 {
		t.Fatalf("BaseScale=%v; want %v", s, want)
	}
	portrait, _ := f.BaseScale(Viewport{450, 900}, 0.5)
	if math.Abs(float64(portrait)-want*0.5) > 1e-3 {
		t.Fatalf("portrait BaseScale=%v; want %v", portrait, want*0.5)
	}
}

func TestFit_InvalidBounds(t *testing.T) {
	f := Fit{FovY: 45, Distance: 15, Fraction: 0.6}
	for _, h := range []float32{0, -1, float32(math.NaN())} {
		if _, err := f.BaseScale(Viewport{800, 600}, h); !errors.Is(err, ErrInvalidScale) {
			t.Fatalf("BaseScale(h=%v) err=%v; want ErrInvalidScale", h, err)
		}
	}
}

func TestBust_ScalePositiveOverSliderRange(t *testing.T) {
	f := Fit{FovY: 45, Distance: 15, Fraction: 0.6}
	viewports := []Viewport{{1920, 1080}, {375, 812}, {10, 4000}}
	for _, vp := range viewports {
		base, err := f.BaseScale(vp, 0.42)
		if err != nil {
			t.Fatalf("BaseScale(%v): %v", vp, err)
		}
		for u := float32(0.1); u <= 3.0; u += 0.05 {
			b := Bust{BaseScale: base, UserScale: u}
			s, err := b.Scale()
			if err != nil || s <= 0 {
				t.Fatalf("Scale(vp=%v, user=%v)=%v, %v; want > 0", vp, u, s, err)
			}
		}
	}
	if _, err := (Bust{BaseScale: 25, UserScale: 0}).Scale(); !errors.Is(err, ErrInvalidScale) {
		t.Fatalf("zero user scale err=%v", err)
	}
}
