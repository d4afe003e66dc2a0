package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// hoverPad widens the pick sphere so small bodies are easy to hit.
const hoverPad = 1.5

// HandleInput feeds the mouse into the orbit camera and the hover state. When captured is true
// (console open or pointer over the HUD) the camera ignores input and nothing is hovered.
func (s *Scene) HandleInput(captured bool) {
	if captured {
		s.hover(-1)
		return
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		s.app.Camera.Rotate(d.X, d.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		s.app.Camera.Zoom(wheel)
	}

	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), s.Camera)
	hovered := -1
	var nearest float32
	for i, b := range s.app.Bodies {
		r := b.Radius * hoverPad
		if b.Orbit.IsBottle && s.app.BottleLoaded {
			r = s.bottle.height * s.app.Preset.Bottle.Scale / 2
		}
		hit := rl.GetRayCollisionSphere(ray, vec3(b.Position), r)
		if hit.Hit && (hovered < 0 || hit.Distance < nearest) {
			hovered, nearest = i, hit.Distance
		}
	}
	s.hover(hovered)
}

func (s *Scene) hover(i int) {
	if i != s.app.Hovered() {
		s.app.SetHovered(i)
	}
}
