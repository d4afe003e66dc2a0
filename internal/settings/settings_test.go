package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "settings.json"))
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != Default() {
		t.Fatalf("Load=%+v; want %+v", got, Default())
	}
}

func TestLoad_ParseFailureGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{"mainLight": "2",`)
	got, err := NewStore(path).Load()
	if err == nil {
		t.Fatalf("Load: want parse error reported")
	}
	if got != Default() {
		t.Fatalf("Load=%+v; want defaults", got)
	}
}

func TestLoad_MissingKeyFallsBackToItsDefault(t *testing.T) {
	tcs := []struct {
		name    string
		content string
		key     string
		want    float32
	}{
		{name: "absent", content: `{"mainLight":"2.5"}`, key: KeyFillLight, want: 0.2},
		{name: "present", content: `{"mainLight":"2.5"}`, key: KeyMainLight, want: 2.5},
		{name: "bare number", content: `{"rimLight":1.25}`, key: KeyRimLight, want: 1.25},
		{name: "malformed", content: `{"exposure":"bright"}`, key: KeyExposure, want: 1.0},
		{name: "negative intensity", content: `{"ambientLight":"-1"}`, key: KeyAmbientLight, want: 0.15},
		{name: "zero size", content: `{"bustSize":"0"}`, key: KeyBustSize, want: 1.0},
		{name: "negative position", content: `{"bustPositionY":"-1.5"}`, key: KeyBustPositionY, want: -1.5},
		{name: "null", content: `{"saturation":null}`, key: KeySaturation, want: 1.0},
	}
	for _, tc := range tcs {
		path := filepath.Join(t.TempDir(), "settings.json")
		writeFile(t, path, tc.content)
		got, err := NewStore(path).Load()
		if err != nil {
			t.Fatalf("%s: Load: %v", tc.name, err)
		}
		v, ok := got.Get(tc.key)
		if !ok || v != tc.want {
			t.Fatalf("%s: %s=%v; want %v", tc.name, tc.key, v, tc.want)
		}
	}
}

func TestSave_ThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	s := NewStore(path)
	want := Default()
	want.MainLight = 4.5
	want.Roughness = 0.25
	want.BustPositionX = -2
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("Load=%+v; want %+v", got, want)
	}
}

func TestSettings_GetSetUnknownKey(t *testing.T) {
	s := Default()
	if s.Set("nope", 1) {
		t.Fatalf("Set(nope) = true")
	}
	if _, ok := s.Get("nope"); ok {
		t.Fatalf("Get(nope) ok")
	}
	if len(Keys()) != 10 {
		t.Fatalf("len(Keys())=%d; want 10", len(Keys()))
	}
}

func TestFeedback_RevertsAfterDuration(t *testing.T) {
	var f Feedback
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := f.Label(now); got != SaveLabel {
		t.Fatalf("Label before Arm=%q", got)
	}
	f.Arm(now)
	if got := f.Label(now.Add(time.Second)); got != SavedLabel {
		t.Fatalf("Label after 1s=%q; want %q", got, SavedLabel)
	}
	if got := f.Label(now.Add(FeedbackDuration)); got != SaveLabel {
		t.Fatalf("Label after duration=%q; want %q", got, SaveLabel)
	}
}
