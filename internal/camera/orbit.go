package camera

import (
	"github.com/chewxy/math32"
)

// minPolar keeps the camera off the poles so the up vector never flips.
const minPolar = 0.01

// Orbit is a damped orbit controller: input accumulates deltas, Update applies a DampingFactor
// share of them each frame and decays the rest, so motion glides to a stop.
// Angles are spherical around Target: Azimuth from +Z toward +X, Polar from +Y.
type Orbit struct {
	Target        [3]float32
	Azimuth       float32
	Polar         float32
	Distance      float32
	MinDistance   float32
	MaxDistance   float32
	DampingFactor float32
	RotateSpeed   float32 // radians per pixel of drag
	ZoomSpeed     float32 // fraction of distance per wheel step

	dAzimuth float32
	dPolar   float32
	dZoom    float32 // log-scale zoom delta
}

// NewOrbit returns a controller placed at position looking at target.
func NewOrbit(position, target [3]float32, minDist, maxDist, damping float32) *Orbit {
	o := &Orbit{
		Target:        target,
		MinDistance:   minDist,
		MaxDistance:   maxDist,
		DampingFactor: damping,
		RotateSpeed:   0.005,
		ZoomSpeed:     0.1,
	}
	dx := position[0] - target[0]
	dy := position[1] - target[1]
	dz := position[2] - target[2]
	o.Distance = math32.Sqrt(dx*dx + dy*dy + dz*dz)
	if o.Distance > 0 {
		o.Polar = math32.Acos(clamp(dy/o.Distance, -1, 1))
		o.Azimuth = math32.Atan2(dx, dz)
	} else {
		o.Polar = math32.Pi / 2
	}
	o.clamp()
	return o
}

// Rotate queues a drag of dx, dy pixels.
func (o *Orbit) Rotate(dx, dy float32) {
	o.dAzimuth -= dx * o.RotateSpeed
	o.dPolar -= dy * o.RotateSpeed
}

// Zoom queues wheel steps; positive moves closer.
func (o *Orbit) Zoom(steps float32) {
	o.dZoom -= steps * o.ZoomSpeed
}

// Update applies one frame of damped motion.
func (o *Orbit) Update() {
	f := o.DampingFactor
	if f <= 0 || f > 1 {
		f = 1
	}
	o.Azimuth += o.dAzimuth * f
	o.Polar += o.dPolar * f
	o.Distance *= math32.Exp(o.dZoom * f)
	o.dAzimuth *= 1 - f
	o.dPolar *= 1 - f
	o.dZoom *= 1 - f
	o.clamp()
}

// Settled reports whether no queued motion remains.
func (o *Orbit) Settled() bool {
	const eps = 1e-5
	return math32.Abs(o.dAzimuth) < eps && math32.Abs(o.dPolar) < eps && math32.Abs(o.dZoom) < eps
}

// Position returns the camera position in world space.
func (o *Orbit) Position() [3]float32 {
	sinP, cosP := math32.Sincos(o.Polar)
	sinA, cosA := math32.Sincos(o.Azimuth)
	return [3]float32{
		o.Target[0] + o.Distance*sinP*sinA,
		o.Target[1] + o.Distance*cosP,
		o.Target[2] + o.Distance*sinP*cosA,
	}
}

func (o *Orbit) clamp() {
	o.Polar = clamp(o.Polar, minPolar, math32.Pi-minPolar)
	if o.MinDistance > 0 && o.Distance < o.MinDistance {
		o.Distance = o.MinDistance
	}
	if o.MaxDistance > 0 && o.Distance > o.MaxDistance {
		o.Distance = o.MaxDistance
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
