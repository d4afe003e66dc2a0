package graphics

import (
	"context"
	"testing"
)

func TestRunning(t *testing.T) {
	live := context.Background()
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	tcs := []struct {
		name        string
		ctx         context.Context
		shouldClose bool
		want        bool
	}{
		{"open", live, false, true},
		{"window closed", live, true, false},
		{"context canceled", canceled, false, false},
		{"both", canceled, true, false},
	}
	for _, tc := range tcs {
		calls := 0
		got := running(tc.ctx, func() bool { calls++; return tc.shouldClose })
		if got != tc.want {
			t.Fatalf("running(%s)=%v; want %v", tc.name, got, tc.want)
		}
		if tc.ctx.Err() != nil && calls != 0 {
			t.Fatalf("running(%s) polled the window after cancel", tc.name)
		}
	}
}
