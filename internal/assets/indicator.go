package assets

import (
	"fmt"
	"sync"
)

const (
	// FailedText is shown once every candidate has failed.
	FailedText = "Failed to load model"

	loadingText = "Loading..."
)

// Indicator is the loading overlay state. The loader goroutine writes it and the render loop reads it.
type Indicator struct {
	mu      sync.Mutex
	visible bool
	text    string
	path    string
}

// NewIndicator returns an indicator that is visible from the start, as the page shows it before any script runs.
func NewIndicator() *Indicator {
	return &Indicator{visible: true, text: loadingText}
}

// Begin marks the start of a new candidate path.
func (i *Indicator) Begin(path string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.visible = true
	i.text = loadingText
	i.path = path
}

// Update sets the percentage text. Unknown totals leave the plain loading text.
func (i *Indicator) Update(done, total int64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if total <= 0 {
		i.text = loadingText
		return
	}
	i.text = fmt.Sprintf("Loading... %.2f%%", Percent(done, total))
}

// Done hides the overlay.
func (i *Indicator) Done() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.visible = false
}

// Fail shows the failure text.
func (i *Indicator) Fail() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.visible = true
	i.text = FailedText
}

// Snapshot returns whether the overlay is visible and its text.
func (i *Indicator) Snapshot() (visible bool, text string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.visible, i.text
}

// Path is the candidate currently being loaded.
func (i *Indicator) Path() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.path
}

// Percent is done/total*100 clamped to [0, 100].
func Percent(done, total int64) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(done) / float64(total) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
