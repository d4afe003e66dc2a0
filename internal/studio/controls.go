package studio

import (
	"time"

	"bust-studio/internal/controls"
	"bust-studio/internal/settings"
)

// ActionSave persists the current settings.
const ActionSave = "save"

// Ranges are the slider ranges of every control.
var Ranges = map[string]controls.Range{
	settings.KeyMainLight:     {Min: 0, Max: 10},
	settings.KeyFillLight:     {Min: 0, Max: 2},
	settings.KeyAmbientLight:  {Min: 0, Max: 2},
	settings.KeyRimLight:      {Min: 0, Max: 5},
	settings.KeyExposure:      {Min: 0.1, Max: 3},
	settings.KeyBustSize:      {Min: 0.1, Max: 3},
	settings.KeyBustPositionX: {Min: -5, Max: 5},
	settings.KeyBustPositionY: {Min: -5, Max: 5},
	settings.KeyRoughness:     {Min: 0, Max: 1},
	settings.KeySaturation:    {Min: 0, Max: 2},
}

// BindControls registers every control on b in display order, plus the save action.
// Light controls whose light is missing from the rig stay unbound.
func (a *App) BindControls(b *controls.Binder, store *settings.Store, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	for _, key := range settings.Keys() {
		r := Ranges[key]
		initial, _ := a.Settings.Get(key)
		b.Bind(key, r.Min, r.Max, initial, a.target(key))
	}
	b.OnAction(ActionSave, func() error {
		if err := store.Save(a.Settings); err != nil {
			a.log.Errorf("studio: save settings: %v", err)
			return err
		}
		a.Feedback.Arm(now())
		a.log.Infof("studio: settings saved to %s", store.Path())
		return nil
	})
}

// target returns the apply function for key, or nil when the thing it drives does not exist.
func (a *App) target(key string) func(float32) {
	for _, lc := range lightControls {
		if lc.key != key {
			continue
		}
		if _, ok := a.Rig.Get(lc.light); !ok {
			return nil
		}
		light := lc.light
		return func(v float32) {
			a.Rig.SetIntensity(light, v)
			a.Settings.Set(key, v)
		}
	}
	switch key {
	case settings.KeyBustSize:
		return func(v float32) {
			a.Bust.UserScale = v
			a.Settings.BustSize = v
		}
	case settings.KeyBustPositionX:
		return func(v float32) {
			a.Bust.Offset[0] = v
			a.Settings.BustPositionX = v
		}
	case settings.KeyBustPositionY:
		return func(v float32) {
			a.Bust.Offset[1] = v
			a.Settings.BustPositionY = v
		}
	}
	// exposure, roughness and saturation are read from Settings by the renderer each frame
	return func(v float32) {
		a.Settings.Set(key, v)
	}
}

// PanelState is the current control panel contents.
func (a *App) PanelState(b *controls.Binder, now time.Time) controls.PanelState {
	st := controls.PanelState{
		Readouts:  b.Readouts(),
		SaveLabel: a.Feedback.Label(now),
	}
	if visible, text := a.Indicator.Snapshot(); visible {
		st.Loading = text
	}
	return st
}
