package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c := Default()
	if c.WorkMinutes != 25 || c.RestMinutes != 5 {
		t.Fatalf("defaults = %d/%d, want 25/5", c.WorkMinutes, c.RestMinutes)
	}
	if !c.Sound || !c.Notifications {
		t.Fatal("alerts should default on")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := loadFrom(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if c != Default() {
		t.Fatalf("got %+v, want defaults", c)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tomato", "config.yaml")

	c := Default()
	c.WorkMinutes = 50
	c.RestMinutes = 10
	c.Sound = false
	if err := c.saveTo(path); err != nil {
		t.Fatal(err)
	}

	got, err := loadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != c {
		t.Fatalf("round trip: got %+v, want %+v", got, c)
	}
}

func TestLoadNormalizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("work_minutes: -3\nrest_minutes: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := loadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.WorkMinutes != 25 || c.RestMinutes != 5 {
		t.Fatalf("bad values not normalized: %+v", c)
	}
}

func TestDurations(t *testing.T) {
	c := Default()

	work, rest := c.Durations(false)
	if work != 25*time.Minute || rest != 5*time.Minute {
		t.Fatalf("durations = %v/%v", work, rest)
	}

	work, rest = c.Durations(true)
	if work != 10*time.Second || rest != 5*time.Second {
		t.Fatalf("short durations = %v/%v", work, rest)
	}
}
