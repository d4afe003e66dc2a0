package ui

import (
	"os"
)

// Placed is a node with its resolved style and screen position for this frame.
type Placed struct {
	Node  *Node
	Style ComputedStyle
	X, Y  int32
	W, H  int32
}

// Layout holds the current stylesheet and nodes and places them on screen.
// Resolved styles are cached and only recomputed when the sheet or nodes change.
type Layout struct {
	sheet        *Stylesheet
	nodes        []*Node
	cachedStyles []ComputedStyle
	cacheValid   bool
	placed       []Placed
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (l *Layout) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return err
	}
	l.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded CSS).
func (l *Layout) SetStylesheet(sheet *Stylesheet) {
	l.sheet = sheet
	l.cacheValid = false
}

// Stylesheet returns the current stylesheet (may be nil).
func (l *Layout) Stylesheet() *Stylesheet {
	return l.sheet
}

// SetNodes replaces all nodes. Nodes are drawn in order. Passing the same nodes again keeps the cache.
func (l *Layout) SetNodes(nodes []*Node) {
	if sameNodes(l.nodes, nodes) {
		return
	}
	l.nodes = append(l.nodes[:0], nodes...)
	l.cacheValid = false
}

func sameNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// resolveProps returns merged properties for a node (class and id matched; last wins).
func (l *Layout) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if l.sheet == nil {
		return merged
	}
	for _, rule := range l.sheet.Rules {
		sel := rule.Selector
		matches := false
		switch {
		case len(sel) > 1 && sel[0] == '.':
			matches = n.Class == sel[1:]
		case len(sel) > 1 && sel[0] == '#':
			matches = n.ID == sel[1:]
		}
		if matches {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// Hit returns the topmost node placed by the last Place whose box contains (x, y), or nil.
func (l *Layout) Hit(x, y int32) *Node {
	for i := len(l.placed) - 1; i >= 0; i-- {
		p := l.placed[i]
		if p.W <= 0 || p.H <= 0 {
			continue
		}
		if x >= p.X && x < p.X+p.W && y >= p.Y && y < p.Y+p.H {
			return p.Node
		}
	}
	return nil
}

// Place resolves every node for a screen of screenW × screenH. The returned slice is reused between calls.
func (l *Layout) Place(screenW, screenH int32) []Placed {
	if !l.cacheValid {
		l.cachedStyles = make([]ComputedStyle, len(l.nodes))
		for i, n := range l.nodes {
			l.cachedStyles[i] = ResolveProps(l.resolveProps(n))
		}
		l.cacheValid = true
	}
	l.placed = l.placed[:0]
	for i, n := range l.nodes {
		style := l.cachedStyles[i]
		if style.Width > 0 {
			n.Bounds.Width = float32(style.Width)
		}
		if style.Height > 0 {
			n.Bounds.Height = float32(style.Height)
		}
		n.Bounds.X = float32(style.Left)
		n.Bounds.Y = float32(style.Top)
		p := Placed{Node: n, Style: style, X: int32(n.Bounds.X), Y: int32(n.Bounds.Y), W: int32(n.Bounds.Width), H: int32(n.Bounds.Height)}
		if style.LeftPct >= 0 {
			p.X = (screenW - p.W) * style.LeftPct / 100
		}
		if style.TopPct >= 0 {
			p.Y = (screenH - p.H) * style.TopPct / 100
		}
		p.Y += int32(n.Stack)
		l.placed = append(l.placed, p)
	}
	return l.placed
}
