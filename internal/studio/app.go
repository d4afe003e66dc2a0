// Package studio is the scene's application context: everything the frame loop mutates, kept free of
// GPU types so it can be driven and tested without a window. internal/scene draws it.
package studio

import (
	"bust-studio/internal/anim"
	"bust-studio/internal/assets"
	"bust-studio/internal/camera"
	"bust-studio/internal/layout"
	"bust-studio/internal/lighting"
	"bust-studio/internal/logger"
	"bust-studio/internal/preset"
	"bust-studio/internal/settings"
)

// Light names in the preset that the intensity controls drive.
const (
	LightMain    = "main"
	LightFill    = "fill"
	LightAmbient = "ambient"
	LightRim     = "rim"
)

// lightControls maps a settings key to the light it drives.
var lightControls = []struct{ key, light string }{
	{settings.KeyMainLight, LightMain},
	{settings.KeyFillLight, LightFill},
	{settings.KeyAmbientLight, LightAmbient},
	{settings.KeyRimLight, LightRim},
}

// Body is one orbital object.
type Body struct {
	Orbit    anim.Orbit
	Spin     anim.Spin
	Position [3]float32
	Radius   float32 // sphere radius
}

// App holds the scene state.
type App struct {
	Preset   preset.Scene
	Settings settings.Settings
	Rig      *lighting.Rig
	Bodies   []Body
	Camera   *camera.Orbit

	Sway         anim.HeadSway
	SwayRotation float32
	Bust         layout.Bust
	BustLoaded   bool
	BottleLoaded bool

	Viewport layout.Viewport
	Aspect   float32

	ShowFPS   bool
	Indicator *assets.Indicator
	Feedback  *settings.Feedback

	bustBounds  float32
	fitDistance float32 // camera distance the bust is fitted at, independent of zoom
	log         *logger.Logger
}

// New builds the scene state from the preset with the saved settings applied.
// Problems in the preset are logged and the affected part is left out.
func New(p preset.Scene, s settings.Settings, log *logger.Logger) *App {
	if log == nil {
		log = logger.New("")
	}
	rig, err := lighting.FromPreset(p.Lights)
	if err != nil {
		log.Warnf("studio: %v", err)
	}
	a := &App{
		Preset:    p,
		Settings:  s,
		Rig:       rig,
		Indicator: assets.NewIndicator(),
		Feedback:  &settings.Feedback{},
		log:       log,
	}
	for _, lc := range lightControls {
		v, _ := s.Get(lc.key)
		if !rig.SetIntensity(lc.light, v) {
			log.Debugf("studio: no %q light for %s", lc.light, lc.key)
		}
	}

	slot := -1
	if p.BottleEnabled() {
		slot = p.Bottle.Slot
	}
	ring := anim.Ring(anim.RingOptions{
		Count:          p.Orbit.Count,
		Radius:         p.Orbit.Radius,
		RotationSpeed:  p.Orbit.Speed,
		VerticalCenter: p.Orbit.VerticalCenter,
		BobAmplitude:   p.Orbit.BobAmplitude,
		BobSpeed:       p.Orbit.BobSpeed,
		BottleSlot:     slot,
	})
	a.Bodies = make([]Body, len(ring))
	for i, o := range ring {
		a.Bodies[i] = Body{
			Orbit:    o,
			Spin:     anim.NewSpin(p.Orbit.SpinSpeed, p.Orbit.HoverSpinSpeed, p.Orbit.HoverEase),
			Position: o.Position(0),
			Radius:   p.Orbit.SphereRadius,
		}
	}

	a.Sway = anim.HeadSway{Active: p.Bust.Sway.Active, Speed: p.Bust.Sway.Speed, Amplitude: p.Bust.Sway.Amplitude}
	a.Bust = layout.Bust{
		BaseScale: p.Bust.BaseScale,
		UserScale: s.BustSize,
		Offset:    [3]float32{s.BustPositionX, s.BustPositionY, 0},
	}
	c := p.Camera
	a.Camera = camera.NewOrbit(c.Position, c.Target, c.MinDistance, c.MaxDistance, c.Damping)
	a.fitDistance = a.Camera.Distance
	a.Resize(p.Renderer.Width, p.Renderer.Height)
	return a
}

// Tick advances one frame. dt is the clamped frame delta, elapsed the total clamped time.
func (a *App) Tick(dt float32, elapsed float64) {
	for i := range a.Bodies {
		b := &a.Bodies[i]
		b.Position = b.Orbit.Position(elapsed)
		b.Spin.Update(dt)
	}
	if a.BustLoaded {
		a.SwayRotation = a.Sway.Advance(dt)
	}
	a.Camera.Update()
}

// Resize records the new viewport, sets the camera aspect to width/height and refits the bust.
func (a *App) Resize(width, height int) {
	a.Viewport = layout.Viewport{Width: width, Height: height}
	a.Aspect = a.Viewport.Aspect()
	if a.BustLoaded {
		a.refit()
	}
}

// SetBustLoaded marks the bust as present with its unscaled bounding-box height and fits it.
func (a *App) SetBustLoaded(boundsHeight float32) {
	a.BustLoaded = true
	a.bustBounds = boundsHeight
	a.refit()
}

// BustScale returns the final bust scale. ok is false when the scale is unusable and the
// previous transform should be kept.
func (a *App) BustScale() (scale float32, ok bool) {
	s, err := a.Bust.Scale()
	if err != nil {
		return 0, false
	}
	return s, true
}

// SetHovered marks body i as hovered and every other body as not. -1 clears the hover.
func (a *App) SetHovered(i int) {
	for j := range a.Bodies {
		a.Bodies[j].Spin.Hovered = j == i
	}
}

// Hovered returns the index of the hovered body or -1.
func (a *App) Hovered() int {
	for i, b := range a.Bodies {
		if b.Spin.Hovered {
			return i
		}
	}
	return -1
}

// Bottle returns the index of the body flagged as the bottle or -1.
func (a *App) Bottle() int {
	for i, b := range a.Bodies {
		if b.Orbit.IsBottle {
			return i
		}
	}
	return -1
}

func (a *App) refit() {
	if a.bustBounds <= 0 {
		return
	}
	fit := layout.Fit{FovY: a.Preset.Camera.FovY, Distance: a.fitDistance, Fraction: a.Preset.Bust.FitFraction}
	base, err := fit.BaseScale(a.Viewport, a.bustBounds)
	if err != nil {
		a.log.Warnf("studio: bust scale not applied: %v", err)
		return
	}
	a.Bust.BaseScale = base
}
