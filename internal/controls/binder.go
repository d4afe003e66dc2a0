// Package controls is the message interface between the control surfaces (browser panel, console)
// and the scene. Surfaces send Messages from any goroutine; the render thread drains them.
package controls

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"bust-studio/internal/logger"
)

var (
	// ErrUnknownControl is returned for a control name with no binding.
	ErrUnknownControl = errors.New("controls: unknown control")
	// ErrUnknownAction is returned for an action name with no handler.
	ErrUnknownAction = errors.New("controls: unknown action")
	// ErrInvalidValue is returned for NaN or infinite values.
	ErrInvalidValue = errors.New("controls: invalid value")
)

// DefaultInbox is the inbox size used when New is given 0.
const DefaultInbox = 64

// Message is one control change or action. Exactly one of Control or Action is expected.
type Message struct {
	Control string  `json:"control,omitempty"`
	Value   float64 `json:"value"`
	Action  string  `json:"action,omitempty"`
}

// Readout is the current value of a control and its display text.
type Readout struct {
	Control string  `json:"control"`
	Value   float32 `json:"value"`
	Min     float32 `json:"min"`
	Max     float32 `json:"max"`
	Text    string  `json:"text"`
}

type binding struct {
	control  string
	min, max float32
	value    float32
	apply    func(float32)
}

// Binder maps control names to apply functions.
type Binder struct {
	log   *logger.Logger
	inbox chan Message

	mu        sync.Mutex
	bindings  []*binding
	actions   map[string]func() error
	observers []func(Readout)
}

// New returns a binder whose inbox holds up to inboxSize pending messages.
func New(log *logger.Logger, inboxSize int) *Binder {
	if inboxSize <= 0 {
		inboxSize = DefaultInbox
	}
	return &Binder{
		log:     log,
		inbox:   make(chan Message, inboxSize),
		actions: make(map[string]func() error),
	}
}

// Bind registers control with its range, initial value and apply function. An initial value outside
// the range is clamped and applied. A nil apply means the target does not exist; the control is then
// left unbound and messages for it are ignored.
func (b *Binder) Bind(control string, min, max, initial float32, apply func(float32)) {
	if apply == nil {
		b.debugf("controls: %s has no target, not bound", control)
		return
	}
	if min > max {
		min, max = max, min
	}
	if math.IsNaN(float64(initial)) {
		initial = min
	}
	bd := &binding{control: control, min: min, max: max, value: clampf(initial, min, max), apply: apply}
	b.mu.Lock()
	replaced := false
	for i, old := range b.bindings {
		if old.control == control {
			b.bindings[i] = bd
			replaced = true
			break
		}
	}
	if !replaced {
		b.bindings = append(b.bindings, bd)
	}
	b.mu.Unlock()

	// the target always starts at the value the readout shows
	if bd.value != initial {
		b.debugf("controls: %s initial %v clamped to %v", control, initial, bd.value)
		apply(bd.value)
	}
}

// OnAction registers fn to run for Message{Action: name}.
func (b *Binder) OnAction(name string, fn func() error) {
	b.mu.Lock()
	b.actions[name] = fn
	b.mu.Unlock()
}

// Observe registers fn to be called with every readout that changes.
func (b *Binder) Observe(fn func(Readout)) {
	b.mu.Lock()
	b.observers = append(b.observers, fn)
	b.mu.Unlock()
}

// Send queues msg without blocking. A full inbox drops the message and returns false.
func (b *Binder) Send(msg Message) bool {
	select {
	case b.inbox <- msg:
		return true
	default:
		if b.log != nil {
			b.log.Warnf("controls: inbox full, dropped %+v", msg)
		}
		return false
	}
}

// Drain handles every queued message and returns how many were handled. Call it from the render thread.
func (b *Binder) Drain() int {
	n := 0
	for {
		select {
		case msg := <-b.inbox:
			n++
			if err := b.Handle(msg); err != nil {
				if errors.Is(err, ErrUnknownControl) || errors.Is(err, ErrUnknownAction) {
					b.debugf("%v", err)
				} else if b.log != nil {
					b.log.Warnf("%v", err)
				}
			}
		default:
			return n
		}
	}
}

// Handle applies msg immediately.
func (b *Binder) Handle(msg Message) error {
	if msg.Action != "" {
		b.mu.Lock()
		fn, ok := b.actions[msg.Action]
		b.mu.Unlock()
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownAction, msg.Action)
		}
		if err := fn(); err != nil {
			return fmt.Errorf("controls: %s: %w", msg.Action, err)
		}
		return nil
	}
	if math.IsNaN(msg.Value) || math.IsInf(msg.Value, 0) {
		return fmt.Errorf("%w: %s=%v", ErrInvalidValue, msg.Control, msg.Value)
	}
	b.mu.Lock()
	bd := b.find(msg.Control)
	if bd == nil {
		b.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownControl, msg.Control)
	}
	bd.value = clampf(float32(msg.Value), bd.min, bd.max)
	r := bd.readout()
	apply := bd.apply
	observers := append([]func(Readout){}, b.observers...)
	b.mu.Unlock()

	apply(r.Value)
	for _, fn := range observers {
		fn(r)
	}
	return nil
}

// Value returns the current value of control.
func (b *Binder) Value(control string) (float32, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if bd := b.find(control); bd != nil {
		return bd.value, true
	}
	return 0, false
}

// Readouts returns every bound control in registration order.
func (b *Binder) Readouts() []Readout {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Readout, len(b.bindings))
	for i, bd := range b.bindings {
		out[i] = bd.readout()
	}
	return out
}

// Controls returns the bound control names in registration order.
func (b *Binder) Controls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.bindings))
	for i, bd := range b.bindings {
		out[i] = bd.control
	}
	return out
}

func (b *Binder) find(control string) *binding {
	for _, bd := range b.bindings {
		if bd.control == control {
			return bd
		}
	}
	return nil
}

func (b *Binder) debugf(format string, args ...any) {
	if b.log != nil {
		b.log.Debugf(format, args...)
	}
}

func (bd *binding) readout() Readout {
	return Readout{Control: bd.control, Value: bd.value, Min: bd.min, Max: bd.max, Text: FormatValue(bd.value)}
}

// FormatValue is the readout text: two decimals.
func FormatValue(v float32) string {
	return fmt.Sprintf("%.2f", v)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
