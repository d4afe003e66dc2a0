package ui

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCSS(t *testing.T) {
	sheet, err := ParseCSS(`
/* comment */
.panel { background: #333; width: 200px }
#loading, .hint { color: rgba(255, 0, 0, 0.5); left: 50%; }
@media (max-width: 600px) { .panel { width: 100px; } }
div.panel { color: #fff; }
.panel .child { color: #fff; }
.panel { width: 250px; }
`)
	if err != nil {
		t.Fatalf("ParseCSS: %v", err)
	}
	var sels []string
	for _, r := range sheet.Rules {
		sels = append(sels, r.Selector)
	}
	if got := strings.Join(sels, " "); got != ".panel #loading .hint .panel" {
		t.Fatalf("selectors=%q", got)
	}
	if w := sheet.Rules[0].Props["width"]; w != "200px" {
		t.Fatalf("width=%q", w)
	}
	if c := sheet.Rules[1].Props["color"]; !strings.HasPrefix(c, "rgba(") {
		t.Fatalf("color=%q", c)
	}
}

func TestParseColor(t *testing.T) {
	tcs := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}, true},
		{"#4CAF50", color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 255}, true},
		{"#00000080", color.RGBA{A: 0x80}, true},
		{"rgb(1, 2, 3)", color.RGBA{R: 1, G: 2, B: 3, A: 255}, true},
		{"rgba(0,0,0,0.6)", color.RGBA{A: 153}, true},
		{"#12", color.RGBA{}, false},
		{"#ggg", color.RGBA{}, false},
		{"rgba(0,0,0,2)", color.RGBA{}, false},
		{"red", color.RGBA{}, false},
	}
	for _, tc := range tcs {
		got, ok := ParseColor(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseColor(%q)=%v,%v; want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResolveProps(t *testing.T) {
	st := ResolveProps(map[string]string{
		"border":    "1px solid #333",
		"left":      "50%",
		"top":       "12px",
		"width":     "260px",
		"padding":   "6",
		"font-size": "16px",
	})
	if !st.HasBorder || st.Border != (color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}) {
		t.Fatalf("border=%v,%v", st.Border, st.HasBorder)
	}
	if st.LeftPct != 50 || st.TopPct != -1 || st.Top != 12 || st.Width != 260 || st.Padding != 6 || st.FontSize != 16 {
		t.Fatalf("style=%+v", st)
	}
}

func TestLayout_PlaceAndStack(t *testing.T) {
	sheet, err := DefaultStylesheet()
	if err != nil {
		t.Fatalf("DefaultStylesheet: %v", err)
	}
	var l Layout
	l.SetStylesheet(sheet)
	p := NewPanel()
	nodes := p.AppendNodes(nil, PanelView{
		Visible:   true,
		Title:     "Lighting",
		Rows:      []Row{{"mainLight", "3.00"}, {"fillLight", "0.20"}},
		SaveLabel: "Save Settings",
		Loading:   "Loading... 50.00%",
		ShowFPS:   true,
		FPS:       60,
	})
	if len(nodes) != 7 {
		t.Fatalf("nodes=%d; want panel, title, 2 rows, save, loading, fps", len(nodes))
	}
	l.SetNodes(nodes)
	placed := l.Place(1000, 800)

	row0, row1 := placed[2], placed[3]
	if row1.Y-row0.Y != RowHeight || row0.X != 24 {
		t.Fatalf("rows at (%d,%d) and (%d,%d)", row0.X, row0.Y, row1.X, row1.Y)
	}
	loading := placed[5]
	if loading.Node.ID != "loading" || loading.X != (1000-260)/2 {
		t.Fatalf("loading placed at %d (%+v)", loading.X, loading.Node)
	}
	fps := placed[6]
	if fps.X != 1000-90 || fps.Node.Text != "60 FPS" {
		t.Fatalf("fps at %d text=%q", fps.X, fps.Node.Text)
	}
	if placed[0].Style.Background.A == 0 {
		t.Fatalf("panel background not resolved")
	}
}

func TestPanel_HiddenKeepsOverlays(t *testing.T) {
	p := NewPanel()
	nodes := p.AppendNodes(nil, PanelView{Loading: "Failed to load model"})
	if len(nodes) != 1 || nodes[0].Text != "Failed to load model" {
		t.Fatalf("nodes=%+v", nodes)
	}
	if nodes := p.AppendNodes(nil, PanelView{}); len(nodes) != 0 {
		t.Fatalf("empty view produced %d nodes", len(nodes))
	}
}

func TestLayout_HitFindsSaveButton(t *testing.T) {
	sheet, err := DefaultStylesheet()
	if err != nil {
		t.Fatalf("DefaultStylesheet: %v", err)
	}
	var l Layout
	l.SetStylesheet(sheet)
	p := NewPanel()
	l.SetNodes(p.AppendNodes(nil, PanelView{
		Visible:   true,
		Title:     "Lighting",
		Rows:      []Row{{"mainLight", "3.00"}, {"fillLight", "0.20"}},
		SaveLabel: "Save Settings",
	}))
	placed := l.Place(1000, 800)
	save := placed[len(placed)-1]
	if !p.IsSave(save.Node) || save.Node.Text != "Save Settings" {
		t.Fatalf("last node=%+v; want the save label", save.Node)
	}

	tcs := []struct {
		name   string
		x, y   int32
		isSave bool
		isNil  bool
	}{
		{"save centre", save.X + save.W/2, save.Y + save.H/2, true, false},
		{"save top-left", save.X, save.Y, true, false},
		{"panel above save", save.X, save.Y - 30, false, false},
		{"outside", 900, 700, false, true},
	}
	for _, tc := range tcs {
		n := l.Hit(tc.x, tc.y)
		if got := p.IsSave(n); got != tc.isSave {
			t.Fatalf("Hit(%s) IsSave=%v; want %v (node %+v)", tc.name, got, tc.isSave, n)
		}
		if (n == nil) != tc.isNil {
			t.Fatalf("Hit(%s)=%+v; want nil=%v", tc.name, n, tc.isNil)
		}
	}
	if p.IsSave(nil) {
		t.Fatalf("IsSave(nil)=true")
	}
}

func TestLayout_LoadCSS(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "hud.css")
	if err := os.WriteFile(good, []byte(".panel { width: 420px; }"), 0o644); err != nil {
		t.Fatal(err)
	}
	var l Layout
	if err := l.LoadCSS(good); err != nil {
		t.Fatalf("LoadCSS: %v", err)
	}
	sheet := l.Stylesheet()
	if sheet == nil || len(sheet.Rules) != 1 || sheet.Rules[0].Props["width"] != "420px" {
		t.Fatalf("sheet=%+v", sheet)
	}
	if err := l.LoadCSS(filepath.Join(dir, "missing.css")); err == nil {
		t.Fatalf("LoadCSS(missing) succeeded")
	}
	if l.Stylesheet() != sheet {
		t.Fatalf("failed load replaced the stylesheet")
	}
}
