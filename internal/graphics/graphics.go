package graphics

import (
	"context"
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"bust-studio/internal/anim"
)

// Options configures the window.
type Options struct {
	Title       string
	Width       int
	Height      int
	TargetFPS   int
	Antialias   bool
	Transparent bool
	Background  color.RGBA
}

// Loop holds the per-frame callbacks. Any of them may be nil.
type Loop struct {
	// Resize runs on the first frame and whenever the window size changes, before Update.
	Resize func(width, height int)
	// Update receives the clamped frame delta and total elapsed seconds.
	Update func(dt float32, elapsed float64)
	// Draw runs between BeginDrawing and EndDrawing after the background is cleared.
	Draw func()
	// Close runs before the window is closed, while GPU resources can still be freed.
	Close func()
}

// Run opens a resizable window and drives the loop until the window is closed or ctx is cancelled.
// ESC does not quit; it belongs to the console.
func Run(ctx context.Context, opts Options, loop Loop) {
	flags := uint32(rl.FlagWindowResizable)
	if opts.Antialias {
		flags |= rl.FlagMsaa4xHint
	}
	if opts.Transparent {
		flags |= rl.FlagWindowTransparent
	}
	rl.SetConfigFlags(flags)
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = 1280, 720
	}
	rl.InitWindow(int32(w), int32(h), opts.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	fps := opts.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(int32(fps))

	bg := opts.Background
	if opts.Transparent {
		bg = rl.Blank
	}
	var clock anim.Clock
	first := true
	for running(ctx, rl.WindowShouldClose) {
		if loop.Resize != nil && (first || rl.IsWindowResized()) {
			loop.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
		}
		first = false
		dt := clock.Tick(time.Now())
		if loop.Update != nil {
			loop.Update(dt, clock.Elapsed())
		}

		rl.BeginDrawing()
		rl.ClearBackground(bg)
		if loop.Draw != nil {
			loop.Draw()
		}
		rl.EndDrawing()
	}
	if loop.Close != nil {
		loop.Close()
	}
}

// running reports whether another frame should run. ctx is checked first so a cancelled
// context stops the loop even while the window stays open.
func running(ctx context.Context, shouldClose func() bool) bool {
	return ctx.Err() == nil && !shouldClose()
}
