package studio

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/chewxy/math32"

	"bust-studio/internal/controls"
	"bust-studio/internal/logger"
	"bust-studio/internal/preset"
	"bust-studio/internal/settings"
)

func newApp(t *testing.T) *App {
	t.Helper()
	return New(preset.Default(), settings.Default(), logger.New(""))
}

func TestNew_AppliesSettingsToLights(t *testing.T) {
	s := settings.Default()
	s.MainLight = 7
	s.RimLight = 1.25
	a := New(preset.Default(), s, nil)
	tcs := []struct {
		light string
		want  float32
	}{
		{LightMain, 7},
		{LightFill, 0.2},
		{LightAmbient, 0.15},
		{LightRim, 1.25},
	}
	for _, tc := range tcs {
		l, ok := a.Rig.Get(tc.light)
		if !ok || l.Intensity != tc.want {
			t.Fatalf("light %q=%v,%v; want %v", tc.light, l, ok, tc.want)
		}
	}
}

func TestNew_RingEvenlySpaced(t *testing.T) {
	a := newApp(t)
	if len(a.Bodies) != 6 {
		t.Fatalf("bodies=%d; want 6", len(a.Bodies))
	}
	for i, b := range a.Bodies {
		want := float32(i) / 6 * 2 * math32.Pi
		if math32.Abs(b.Orbit.InitialAngle-want) > 1e-5 {
			t.Fatalf("body %d angle=%v; want %v", i, b.Orbit.InitialAngle, want)
		}
	}
	if a.Bottle() != -1 {
		t.Fatalf("Bottle=%d; want -1 without bottle paths", a.Bottle())
	}
}

func TestTick_OrbitRadiusAndSwayGate(t *testing.T) {
	a := newApp(t)
	for _, elapsed := range []float64{0, 0.5, 12.25, 3600, 86400 * 3} {
		a.Tick(1.0/60, elapsed)
		for i, b := range a.Bodies {
			d := math32.Hypot(b.Position[0], b.Position[2])
			if math32.Abs(d-b.Orbit.Radius) > 1e-3 {
				t.Fatalf("t=%v body %d distance=%v; want %v", elapsed, i, d, b.Orbit.Radius)
			}
		}
	}
	if a.SwayRotation != 0 || a.Sway.Time != 0 {
		t.Fatalf("sway advanced without a bust: %v", a.Sway)
	}
	a.SetBustLoaded(1)
	for i := 0; i < 120; i++ {
		a.Tick(0.1, float64(i)*0.1)
		amp := a.Preset.Bust.Sway.Amplitude
		if a.SwayRotation < -amp || a.SwayRotation > amp {
			t.Fatalf("sway=%v outside ±%v", a.SwayRotation, amp)
		}
	}
	if a.Sway.Time == 0 {
		t.Fatalf("sway did not advance with a bust")
	}
}

func TestResize_AspectAndScale(t *testing.T) {
	a := newApp(t)
	tcs := []struct{ w, h int }{{1920, 1080}, {390, 844}, {1000, 1000}, {3, 7}}
	for _, tc := range tcs {
		a.Resize(tc.w, tc.h)
		if want := float32(tc.w) / float32(tc.h); a.Aspect != want {
			t.Fatalf("Resize(%d, %d) aspect=%v; want %v", tc.w, tc.h, a.Aspect, want)
		}
	}

	base := a.Bust.BaseScale
	a.Resize(800, 600)
	if a.Bust.BaseScale != base {
		t.Fatalf("scale changed before the bust loaded")
	}
	a.SetBustLoaded(2)
	landscape := a.Bust.BaseScale
	a.Resize(600, 800)
	if a.Bust.BaseScale >= landscape {
		t.Fatalf("portrait scale %v not smaller than landscape %v", a.Bust.BaseScale, landscape)
	}
	for _, user := range []float32{0.1, 0.5, 1, 2.2, 3} {
		a.Bust.UserScale = user
		if s, ok := a.BustScale(); !ok || s <= 0 {
			t.Fatalf("user=%v scale=%v,%v", user, s, ok)
		}
	}
}

func TestResize_InvalidScaleKeepsPrevious(t *testing.T) {
	a := newApp(t)
	a.SetBustLoaded(2)
	before := a.Bust.BaseScale
	a.bustBounds = float32(math32.Inf(1))
	a.Resize(640, 480)
	if a.Bust.BaseScale != before {
		t.Fatalf("invalid scale applied: %v", a.Bust.BaseScale)
	}
}

func TestHover(t *testing.T) {
	a := newApp(t)
	a.SetHovered(2)
	if a.Hovered() != 2 || a.Bodies[2].Spin.Target() != a.Preset.Orbit.HoverSpinSpeed {
		t.Fatalf("hover not applied")
	}
	a.SetHovered(-1)
	if a.Hovered() != -1 {
		t.Fatalf("hover not cleared")
	}
}

func TestBindControls_ApplyAndSave(t *testing.T) {
	a := newApp(t)
	store := settings.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := controls.New(nil, 0)
	a.BindControls(b, store, func() time.Time { return now })

	if got := b.Controls(); len(got) != len(settings.Keys()) {
		t.Fatalf("bound %d controls; want %d", len(got), len(settings.Keys()))
	}
	msgs := []controls.Message{
		{Control: settings.KeyMainLight, Value: 4.5},
		{Control: settings.KeyBustSize, Value: 9},
		{Control: settings.KeyBustPositionX, Value: -1.5},
		{Control: settings.KeyExposure, Value: 1.4},
	}
	for _, m := range msgs {
		if err := b.Handle(m); err != nil {
			t.Fatalf("Handle(%+v): %v", m, err)
		}
	}
	if l, _ := a.Rig.Get(LightMain); l.Intensity != 4.5 {
		t.Fatalf("main intensity=%v", l.Intensity)
	}
	if a.Bust.UserScale != 3 || a.Settings.BustSize != 3 {
		t.Fatalf("bust size=%v/%v; want clamped 3", a.Bust.UserScale, a.Settings.BustSize)
	}
	if a.Bust.Offset[0] != -1.5 || a.Settings.Exposure != 1.4 {
		t.Fatalf("offset=%v exposure=%v", a.Bust.Offset, a.Settings.Exposure)
	}

	if st := a.PanelState(b, now); st.SaveLabel != settings.SaveLabel {
		t.Fatalf("label before save=%q", st.SaveLabel)
	}
	if err := b.Handle(controls.Message{Action: ActionSave}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if st := a.PanelState(b, now.Add(time.Second)); st.SaveLabel != settings.SavedLabel {
		t.Fatalf("label after save=%q", st.SaveLabel)
	}
	if st := a.PanelState(b, now.Add(3*time.Second)); st.SaveLabel != settings.SaveLabel {
		t.Fatalf("label did not revert: %q", st.SaveLabel)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.MainLight != 4.5 || got.BustSize != 3 || got.BustPositionX != -1.5 {
		t.Fatalf("reloaded=%+v", got)
	}
}

func TestBindControls_MissingLightUnbound(t *testing.T) {
	p := preset.Default()
	var kept []preset.Light
	for _, l := range p.Lights {
		if l.Name != LightRim {
			kept = append(kept, l)
		}
	}
	p.Lights = kept
	a := New(p, settings.Default(), nil)
	b := controls.New(nil, 0)
	a.BindControls(b, settings.NewStore(filepath.Join(t.TempDir(), "s.json")), nil)
	if _, ok := b.Value(settings.KeyRimLight); ok {
		t.Fatalf("rimLight bound without a rim light")
	}
	if _, ok := b.Value(settings.KeyMainLight); !ok {
		t.Fatalf("mainLight not bound")
	}
}

func TestResize_ZoomDoesNotChangeBustScale(t *testing.T) {
	a := newApp(t)
	a.Resize(1280, 720)
	a.SetBustLoaded(1)
	before, ok := a.BustScale()
	if !ok {
		t.Fatalf("no bust scale after load")
	}
	start := a.Camera.Distance
	for i := 0; i < 200; i++ {
		a.Camera.Zoom(5)
		a.Camera.Update()
	}
	if a.Camera.Distance == start {
		t.Fatalf("zoom did not move the camera (distance %v)", start)
	}
	a.Resize(1280, 720)
	if after, _ := a.BustScale(); after != before {
		t.Fatalf("scale after zoom and resize=%v; want %v", after, before)
	}
}

func TestBindControls_ClampsSavedValues(t *testing.T) {
	s := settings.Default()
	s.Exposure = 0
	s.MainLight = 50
	a := New(preset.Default(), s, nil)
	b := controls.New(nil, 0)
	a.BindControls(b, settings.NewStore(filepath.Join(t.TempDir(), "s.json")), nil)

	if v, _ := b.Value(settings.KeyExposure); v != a.Settings.Exposure || v != Ranges[settings.KeyExposure].Min {
		t.Fatalf("exposure readout=%v applied=%v; want %v", v, a.Settings.Exposure, Ranges[settings.KeyExposure].Min)
	}
	l, _ := a.Rig.Get(LightMain)
	if v, _ := b.Value(settings.KeyMainLight); v != l.Intensity || v != Ranges[settings.KeyMainLight].Max || a.Settings.MainLight != v {
		t.Fatalf("mainLight readout=%v intensity=%v setting=%v", v, l.Intensity, a.Settings.MainLight)
	}
}
