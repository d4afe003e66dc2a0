package anim

import (
	"time"

	"github.com/chewxy/math32"
)

// HeadSway rotates the bust gently around its vertical axis: rotation = sin(time·speed)·amplitude.
type HeadSway struct {
	Active    bool
	Time      float32 // accumulated seconds
	Speed     float32
	Amplitude float32 // radians
}

// Advance accumulates dt while active and returns the current rotation.
func (h *HeadSway) Advance(dt float32) float32 {
	if h.Active {
		h.Time += dt
		// keep the phase small so float32 time does not lose precision over long sessions
		if h.Speed != 0 {
			period := float32(twoPi) / math32.Abs(h.Speed)
			if h.Time > period {
				h.Time = math32.Mod(h.Time, period)
			}
		}
	}
	return h.Rotation()
}

// Rotation returns sin(time·speed)·amplitude, or 0 when inactive.
func (h HeadSway) Rotation() float32 {
	if !h.Active {
		return 0
	}
	return math32.Sin(h.Time*h.Speed) * h.Amplitude
}

// Spin is an object's self-rotation speed, eased toward a hover target each frame.
type Spin struct {
	Hovered bool
	Current float32 // radians per second around Y
	Base    float32
	Hover   float32
	Ease    float32 // fraction of the remaining gap closed per 1/60 s
	RotX    float32 // accumulated rotation around X
	RotY    float32 // accumulated rotation around Y
}

// NewSpin returns a spin resting at base speed.
func NewSpin(base, hover, ease float32) Spin {
	return Spin{Current: base, Base: base, Hover: hover, Ease: ease}
}

// Target returns the speed the spin is easing toward.
func (s Spin) Target() float32 {
	if s.Hovered {
		return s.Hover
	}
	return s.Base
}

// Update eases Current toward Target and advances the accumulated rotation.
// The easing is frame-rate independent: the same fraction is closed per 1/60 s.
func (s *Spin) Update(dt float32) {
	if dt <= 0 {
		return
	}
	k := 1 - math32.Pow(1-clamp01(s.Ease), dt*60)
	s.Current += (s.Target() - s.Current) * k
	s.RotY = wrap(s.RotY + s.Current*dt)
	s.RotX = wrap(s.RotX + s.Current*0.5*dt)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func wrap(a float32) float32 {
	return math32.Mod(a, float32(twoPi))
}

// MaxDelta caps a frame delta so a stalled or backgrounded window does not make objects jump.
const MaxDelta = 250 * time.Millisecond

// Clock measures time between frames and the total elapsed time since the first tick.
type Clock struct {
	start   time.Time
	last    time.Time
	elapsed float64
}

// Tick returns the delta since the previous tick in seconds, clamped to [0, MaxDelta].
// The first tick returns 0.
func (c *Clock) Tick(now time.Time) float32 {
	if c.last.IsZero() {
		c.start = now
		c.last = now
		return 0
	}
	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		d = 0
	}
	if d > MaxDelta {
		d = MaxDelta
	}
	c.elapsed += d.Seconds()
	return float32(d.Seconds())
}

// Elapsed returns the accumulated (clamped) seconds.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}
