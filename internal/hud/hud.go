// Package hud draws ui nodes with raylib.
package hud

import (
	"errors"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"bust-studio/internal/ui"
)

// Engine lays out nodes with a ui.Layout and draws them.
type Engine struct {
	layout ui.Layout
	font   rl.Font
	placed []ui.Placed
}

// New returns an engine using the built-in stylesheet.
func New() (*Engine, error) {
	sheet, err := ui.DefaultStylesheet()
	if err != nil {
		return nil, err
	}
	e := &Engine{}
	e.layout.SetStylesheet(sheet)
	return e, nil
}

// LoadCSS replaces the stylesheet with the file at path.
func (e *Engine) LoadCSS(path string) error {
	return e.layout.LoadCSS(path)
}

// LoadFont loads the first candidate that exists. Returns the path used. Without a font the
// raylib default font is drawn.
func (e *Engine) LoadFont(candidates []string) (string, error) {
	for _, p := range candidates {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		f := rl.LoadFont(p)
		if f.Texture.ID == 0 {
			continue
		}
		if e.font.Texture.ID != 0 {
			rl.UnloadFont(e.font)
		}
		e.font = f
		return p, nil
	}
	return "", errors.New("hud: no font candidate could be loaded")
}

// Font returns the loaded font (zero texture ID = raylib default).
func (e *Engine) Font() rl.Font {
	return e.font
}

// Draw places and draws nodes in order: background, 1px border, then text.
func (e *Engine) Draw(nodes []*ui.Node) {
	e.layout.SetNodes(nodes)
	e.placed = e.layout.Place(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	for _, p := range e.placed {
		st := p.Style
		if st.Background.A > 0 && p.W > 0 && p.H > 0 {
			rl.DrawRectangle(p.X, p.Y, p.W, p.H, st.Background)
		}
		if st.HasBorder && p.W > 0 && p.H > 0 {
			rl.DrawRectangleLines(p.X, p.Y, p.W, p.H, st.Border)
		}
		if p.Node.Text == "" {
			continue
		}
		pad := st.Padding
		if pad <= 0 {
			pad = 4
		}
		size := st.FontSize
		if size <= 0 {
			size = ui.DefaultFontSize
		}
		x, y := p.X+pad, p.Y+pad
		if e.font.Texture.ID != 0 {
			rl.DrawTextEx(e.font, p.Node.Text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, st.Color)
		} else {
			rl.DrawText(p.Node.Text, x, y, size, st.Color)
		}
	}
}

// Covers reports whether the point lies over a node with a background drawn last frame.
func (e *Engine) Covers(x, y int32) bool {
	for _, p := range e.placed {
		if p.Style.Background.A == 0 {
			continue
		}
		if x >= p.X && x < p.X+p.W && y >= p.Y && y < p.Y+p.H {
			return true
		}
	}
	return false
}

// NodeAt returns the topmost node drawn last frame under the point, or nil.
func (e *Engine) NodeAt(x, y int32) *ui.Node {
	return e.layout.Hit(x, y)
}

// Unload frees the font.
func (e *Engine) Unload() {
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
}
