// Package settings persists the user-adjustable scene parameters (light intensities, exposure,
// bust size/position, material roughness, colour saturation) as a flat JSON record of numeric strings.
package settings

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Value is a numeric string as stored in the record. Bare JSON numbers are accepted when decoding
// so records written by older builds (numbers instead of strings) still load.
type Value string

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = Value(n.String())
	return nil
}

// Record is the persisted form. Empty fields mean "not saved" and resolve to defaults.
type Record struct {
	MainLight     Value `json:"mainLight,omitempty"`
	FillLight     Value `json:"fillLight,omitempty"`
	AmbientLight  Value `json:"ambientLight,omitempty"`
	RimLight      Value `json:"rimLight,omitempty"`
	Exposure      Value `json:"exposure,omitempty"`
	BustSize      Value `json:"bustSize,omitempty"`
	BustPositionX Value `json:"bustPositionX,omitempty"`
	BustPositionY Value `json:"bustPositionY,omitempty"`
	Roughness     Value `json:"roughness,omitempty"`
	Saturation    Value `json:"saturation,omitempty"`
}

// Settings is the resolved, numeric form used by the scene.
type Settings struct {
	MainLight     float32
	FillLight     float32
	AmbientLight  float32
	RimLight      float32
	Exposure      float32
	BustSize      float32
	BustPositionX float32
	BustPositionY float32
	Roughness     float32
	Saturation    float32
}

// Control keys, shared with the control panel.
const (
	KeyMainLight     = "mainLight"
	KeyFillLight     = "fillLight"
	KeyAmbientLight  = "ambientLight"
	KeyRimLight      = "rimLight"
	KeyExposure      = "exposure"
	KeyBustSize      = "bustSize"
	KeyBustPositionX = "bustPositionX"
	KeyBustPositionY = "bustPositionY"
	KeyRoughness     = "roughness"
	KeySaturation    = "saturation"
)

// Default returns the documented default of every key.
func Default() Settings {
	return Settings{
		MainLight:     3,
		FillLight:     0.2,
		AmbientLight:  0.15,
		RimLight:      0.5,
		Exposure:      1.0,
		BustSize:      1.0,
		BustPositionX: 0,
		BustPositionY: 0,
		Roughness:     0.7,
		Saturation:    1.0,
	}
}

// field ties a key to its record and settings slots. Values below min fall back to the default.
type field struct {
	key string
	rec func(*Record) *Value
	val func(*Settings) *float32
	min float32
}

var noMin = float32(math.Inf(-1))

var fields = []field{
	{KeyMainLight, func(r *Record) *Value { return &r.MainLight }, func(s *Settings) *float32 { return &s.MainLight }, 0},
	{KeyFillLight, func(r *Record) *Value { return &r.FillLight }, func(s *Settings) *float32 { return &s.FillLight }, 0},
	{KeyAmbientLight, func(r *Record) *Value { return &r.AmbientLight }, func(s *Settings) *float32 { return &s.AmbientLight }, 0},
	{KeyRimLight, func(r *Record) *Value { return &r.RimLight }, func(s *Settings) *float32 { return &s.RimLight }, 0},
	{KeyExposure, func(r *Record) *Value { return &r.Exposure }, func(s *Settings) *float32 { return &s.Exposure }, 0},
	{KeyBustSize, func(r *Record) *Value { return &r.BustSize }, func(s *Settings) *float32 { return &s.BustSize }, math.SmallestNonzeroFloat32},
	{KeyBustPositionX, func(r *Record) *Value { return &r.BustPositionX }, func(s *Settings) *float32 { return &s.BustPositionX }, noMin},
	{KeyBustPositionY, func(r *Record) *Value { return &r.BustPositionY }, func(s *Settings) *float32 { return &s.BustPositionY }, noMin},
	{KeyRoughness, func(r *Record) *Value { return &r.Roughness }, func(s *Settings) *float32 { return &s.Roughness }, 0},
	{KeySaturation, func(r *Record) *Value { return &r.Saturation }, func(s *Settings) *float32 { return &s.Saturation }, 0},
}

// Keys returns every control key in display order.
func Keys() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.key
	}
	return out
}

func lookup(key string) (field, bool) {
	for _, f := range fields {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}

// Get returns the value of key.
func (s *Settings) Get(key string) (float32, bool) {
	f, ok := lookup(key)
	if !ok {
		return 0, false
	}
	return *f.val(s), true
}

// Set stores v under key. Returns false for an unknown key.
func (s *Settings) Set(key string, v float32) bool {
	f, ok := lookup(key)
	if !ok {
		return false
	}
	*f.val(s) = v
	return true
}

// Resolve converts the record to numeric settings. A missing, unparseable, non-finite or
// out-of-range field resolves to that key's default.
func (r Record) Resolve() Settings {
	out := Default()
	for _, f := range fields {
		raw := string(*f.rec(&r))
		if raw == "" {
			continue
		}
		n, err := strconv.ParseFloat(raw, 32)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || float32(n) < f.min {
			continue
		}
		*f.val(&out) = float32(n)
	}
	return out
}

// Record converts settings to their persisted form.
func (s Settings) Record() Record {
	var r Record
	for _, f := range fields {
		*f.rec(&r) = Value(strconv.FormatFloat(float64(*f.val(&s)), 'f', -1, 32))
	}
	return r
}
