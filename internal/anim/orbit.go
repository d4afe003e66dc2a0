// Package anim holds the per-frame motion of the decorative scene: orbiting objects, the bust's head
// sway and the eased hover spin. Everything here is plain math on [3]float32 so it runs without a window.
package anim

import (
	"math"

	"github.com/chewxy/math32"
)

const twoPi = 2 * math.Pi

// Orbit describes one object revolving around the vertical axis through the origin.
// The angle comes from continuous elapsed time; it is wrapped only to keep float32 precision.
type Orbit struct {
	InitialAngle   float32 // radians
	Radius         float32 // scene units
	RotationSpeed  float32 // radians per second
	VerticalCenter float32
	BobAmplitude   float32
	BobSpeed       float32 // radians per second
	IsBottle       bool
}

// RingOptions lays out count orbits at evenly spaced angles.
type RingOptions struct {
	Count          int
	Radius         float32
	RotationSpeed  float32
	VerticalCenter float32
	BobAmplitude   float32
	BobSpeed       float32
	BottleSlot     int // -1 = none
}

// Ring returns count orbits with InitialAngle = i/count * 2π.
func Ring(opts RingOptions) []Orbit {
	if opts.Count <= 0 {
		return nil
	}
	out := make([]Orbit, opts.Count)
	for i := range out {
		out[i] = Orbit{
			InitialAngle:   float32(float64(i) / float64(opts.Count) * twoPi),
			Radius:         opts.Radius,
			RotationSpeed:  opts.RotationSpeed,
			VerticalCenter: opts.VerticalCenter,
			BobAmplitude:   opts.BobAmplitude,
			BobSpeed:       opts.BobSpeed,
			IsBottle:       i == opts.BottleSlot,
		}
	}
	return out
}

// Angle returns the orbit angle at elapsed seconds, in [0, 2π).
func (o Orbit) Angle(elapsed float64) float32 {
	a := math.Mod(float64(o.InitialAngle)+elapsed*float64(o.RotationSpeed), twoPi)
	if a < 0 {
		a += twoPi
	}
	return float32(a)
}

// Position returns the object's position at elapsed seconds:
// x = r·cos(a), z = r·sin(a), y = center + sin(elapsed·bobSpeed + initialAngle)·bobAmplitude.
func (o Orbit) Position(elapsed float64) [3]float32 {
	sin, cos := math32.Sincos(o.Angle(elapsed))
	bobPhase := math.Mod(elapsed*float64(o.BobSpeed)+float64(o.InitialAngle), twoPi)
	y := o.VerticalCenter + math32.Sin(float32(bobPhase))*o.BobAmplitude
	return [3]float32{cos * o.Radius, y, sin * o.Radius}
}
