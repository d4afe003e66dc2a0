// Package layout is the responsive part of the scene: viewport aspect and the bust's fitted scale.
//
// Scaling policy: the bust is fitted by its bounding box. Its height is mapped to FitFraction of the
// visible frustum height at the camera distance; on portrait viewports the visible width is the
// limit, so the target shrinks by the aspect ratio. The user scale multiplies the fitted base.
package layout

import (
	"errors"
	"math"

	"github.com/chewxy/math32"
)

// ErrInvalidScale is returned when a computed scale is NaN, infinite or not positive.
var ErrInvalidScale = errors.New("layout: invalid scale")

// Viewport is the drawable size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Aspect returns Width/Height. A zero height (minimised window) is treated as 1 pixel.
func (v Viewport) Aspect() float32 {
	h := v.Height
	if h <= 0 {
		h = 1
	}
	return float32(v.Width) / float32(h)
}

// Fit describes how the bust is fitted into the view.
type Fit struct {
	FovY     float32 // degrees
	Distance float32 // camera to bust
	Fraction float32 // share of the visible height the bust should take
}

// VisibleHeight returns the frustum height at Distance.
func (f Fit) VisibleHeight() float32 {
	return 2 * f.Distance * math32.Tan(f.FovY*math32.Pi/360)
}

// BaseScale returns the scale that makes a model of boundsHeight fill the fit on viewport vp.
func (f Fit) BaseScale(vp Viewport, boundsHeight float32) (float32, error) {
	target := f.Fraction * f.VisibleHeight()
	if a := vp.Aspect(); a < 1 {
		target *= a
	}
	s := target / boundsHeight
	if !valid(s) {
		return 0, ErrInvalidScale
	}
	return s, nil
}

// Bust is the bust's transform state. Final scale = BaseScale × UserScale.
type Bust struct {
	BaseScale float32
	UserScale float32
	Offset    [3]float32
}

// Scale returns the final scale or ErrInvalidScale.
func (b Bust) Scale() (float32, error) {
	s := b.BaseScale * b.UserScale
	if !valid(s) {
		return 0, ErrInvalidScale
	}
	return s, nil
}

func valid(s float32) bool {
	return !math.IsNaN(float64(s)) && !math.IsInf(float64(s), 0) && s > 0
}
