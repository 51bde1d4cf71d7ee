package config

import (
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv(Defaults())
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("LoadFromEnv() = %+v, want defaults %+v", cfg, Defaults())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults failed validation: %v", err)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvFBDevice, "/dev/fb1")
	t.Setenv(EnvFPS, "60")
	t.Setenv(EnvCanvasMax, "960")
	t.Setenv(EnvSplash, "0s")
	t.Setenv(EnvSwipeThreshold, " 40 ")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvStdioLog, "/tmp/across.log")

	cfg, err := LoadFromEnv(Defaults())
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	want := Config{
		FBDevice:       "/dev/fb1",
		FPS:            60,
		CanvasMaxSide:  960,
		Splash:         0,
		SwipeThreshold: 40,
		Debug:          true,
		StdioLog:       "/tmp/across.log",
	}
	if cfg != want {
		t.Fatalf("LoadFromEnv() = %+v, want %+v", cfg, want)
	}
}

func TestLoadFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"empty device", EnvFBDevice, "  "},
		{"fps not a number", EnvFPS, "fast"},
		{"fps out of range", EnvFPS, "0"},
		{"canvas too large", EnvCanvasMax, "10000"},
		{"splash not a duration", EnvSplash, "3"},
		{"splash negative", EnvSplash, "-1s"},
		{"swipe too small", EnvSwipeThreshold, "2"},
		{"debug not bool", EnvDebug, "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadFromEnv(Defaults()); err == nil {
				t.Fatalf("LoadFromEnv() expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	cfg.FPS = 500
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() expected error for fps 500")
	}
	cfg = Defaults()
	cfg.Splash = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() expected error for negative splash")
	}
}
