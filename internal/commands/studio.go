package commands

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"bust-studio/internal/controls"
)

// Studio is what the console commands act on. Nil hooks make their command report that it is unavailable.
type Studio struct {
	Handle   func(controls.Message) error // applies a control message on the render thread
	Controls func() []string              // bound control names, for errors and help
	Sway     func(on bool)
	FPS      func(show bool)
	Snapshot func() (string, error)
	Print    func(line string)
}

var errUnavailable = errors.New("not available")

// RegisterStudio adds set, save, sway, fps, snapshot and help to r.
func RegisterStudio(r *Registry, s Studio) {
	say := s.Print
	if say == nil {
		say = func(string) {}
	}

	setFS := flag.NewFlagSet("set", flag.ContinueOnError)
	r.Register("set", "set <control> <value>", setFS, func() error {
		args := setFS.Args()
		if len(args) != 2 {
			return fmt.Errorf("set: want <control> <value>, got %d arguments", len(args))
		}
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("set: bad value %q", args[1])
		}
		if s.Handle == nil {
			return fmt.Errorf("set: %w", errUnavailable)
		}
		if err := s.Handle(controls.Message{Control: args[0], Value: v}); err != nil {
			if errors.Is(err, controls.ErrUnknownControl) && s.Controls != nil {
				return fmt.Errorf("%w (one of: %s)", err, strings.Join(s.Controls(), ", "))
			}
			return err
		}
		return nil
	})

	saveFS := flag.NewFlagSet("save", flag.ContinueOnError)
	r.Register("save", "save", saveFS, func() error {
		if s.Handle == nil {
			return fmt.Errorf("save: %w", errUnavailable)
		}
		if err := s.Handle(controls.Message{Action: "save"}); err != nil {
			return err
		}
		say("settings saved")
		return nil
	})

	swayFS := flag.NewFlagSet("sway", flag.ContinueOnError)
	swayOn := swayFS.Bool("on", false, "start the head sway")
	swayOff := swayFS.Bool("off", false, "stop the head sway")
	r.Register("sway", "sway --on|--off", swayFS, func() error {
		on, err := exclusive("sway", *swayOn, *swayOff, "--on", "--off")
		if err != nil {
			return err
		}
		if s.Sway == nil {
			return fmt.Errorf("sway: %w", errUnavailable)
		}
		s.Sway(on)
		return nil
	})

	fpsFS := flag.NewFlagSet("fps", flag.ContinueOnError)
	fpsShow := fpsFS.Bool("show", false, "show the FPS counter")
	fpsHide := fpsFS.Bool("hide", false, "hide the FPS counter")
	r.Register("fps", "fps --show|--hide", fpsFS, func() error {
		show, err := exclusive("fps", *fpsShow, *fpsHide, "--show", "--hide")
		if err != nil {
			return err
		}
		if s.FPS == nil {
			return fmt.Errorf("fps: %w", errUnavailable)
		}
		s.FPS(show)
		return nil
	})

	snapFS := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	r.Register("snapshot", "snapshot", snapFS, func() error {
		if s.Snapshot == nil {
			return fmt.Errorf("snapshot: %w", errUnavailable)
		}
		path, err := s.Snapshot()
		if err != nil {
			return err
		}
		say("snapshot requested: " + path)
		return nil
	})

	helpFS := flag.NewFlagSet("help", flag.ContinueOnError)
	r.Register("help", "help", helpFS, func() error {
		for _, line := range r.Help() {
			say(line)
		}
		if s.Controls != nil {
			say("controls: " + strings.Join(s.Controls(), ", "))
		}
		return nil
	})
}

// exclusive returns a when exactly one of a, b is set.
func exclusive(cmd string, a, b bool, aName, bName string) (bool, error) {
	if a == b {
		return false, fmt.Errorf("%s: pass exactly one of %s or %s", cmd, aName, bName)
	}
	return a, nil
}
