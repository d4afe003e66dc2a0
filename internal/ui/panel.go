package ui

import (
	_ "embed"
	"fmt"
)

//go:embed hud.css
var hudCSS string

// DefaultStylesheet returns the built-in HUD stylesheet.
func DefaultStylesheet() (*Stylesheet, error) {
	return ParseCSS(hudCSS)
}

// RowHeight is the vertical distance between readout rows.
const RowHeight = 24

// Row is one control readout: its label and formatted value.
type Row struct {
	Label string
	Value string
}

// PanelView is the data shown by the on-screen panel. The ui package does not depend on the scene;
// callers fill this in every frame.
type PanelView struct {
	Visible   bool // readouts and save label; the loading text and FPS are independent of it
	Title     string
	Rows      []Row
	SaveLabel string
	Loading   string // empty hides the loading overlay
	ShowFPS   bool
	FPS       int
}

// Panel owns the HUD nodes and updates their text from a PanelView.
type Panel struct {
	panel   *Node
	title   *Node
	rows    []*Node
	save    *Node
	loading *Node
	fps     *Node
}

// NewPanel creates a Panel with nodes styled by .panel, .panel-title, .readout, .save, #loading and #fps.
func NewPanel() *Panel {
	return &Panel{
		panel:   NewNode("panel", "panel", "", ""),
		title:   NewNode("label", "panel-title", "", ""),
		save:    NewNode("label", "save", "", ""),
		loading: NewNode("label", "", "loading", ""),
		fps:     NewNode("label", "", "fps", ""),
	}
}

// IsSave reports whether n is the save button.
func (p *Panel) IsSave(n *Node) bool {
	return n != nil && n == p.save
}

// AppendNodes appends the nodes that are visible for v to dst. Call every frame.
func (p *Panel) AppendNodes(dst []*Node, v PanelView) []*Node {
	if v.Visible {
		for len(p.rows) < len(v.Rows) {
			p.rows = append(p.rows, NewNode("label", "readout", "", ""))
		}
		p.title.Text = v.Title
		p.panel.Bounds.Height = float32((len(v.Rows) + 3) * RowHeight)
		dst = append(dst, p.panel, p.title)
		for i, r := range v.Rows {
			n := p.rows[i]
			n.Text = fmt.Sprintf("%-14s %s", r.Label, r.Value)
			n.Stack = float32(i * RowHeight)
			dst = append(dst, n)
		}
		p.save.Text = v.SaveLabel
		p.save.Stack = float32(len(v.Rows) * RowHeight)
		dst = append(dst, p.save)
	}
	if v.Loading != "" {
		p.loading.Text = v.Loading
		dst = append(dst, p.loading)
	}
	if v.ShowFPS {
		p.fps.Text = fmt.Sprintf("%d FPS", v.FPS)
		dst = append(dst, p.fps)
	}
	return dst
}
