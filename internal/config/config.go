// Package config loads runtime settings from ACROSS_* environment variables.
// Command-line flags in each binary default to these values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvFBDevice       = "ACROSS_FB_DEVICE"
	EnvFPS            = "ACROSS_FPS"
	EnvCanvasMax      = "ACROSS_CANVAS_MAX"
	EnvSplash         = "ACROSS_SPLASH"
	EnvSwipeThreshold = "ACROSS_SWIPE_THRESHOLD"
	EnvDebug          = "ACROSS_DEBUG"
	EnvStdioLog       = "ACROSS_STDIO_LOG"
)

const (
	minFPS            = 1
	maxFPS            = 120
	minCanvasSide     = 160
	maxCanvasSide     = 4096
	minSwipeThreshold = 8
	maxSwipeThreshold = 1000
)

// Config captures startup settings shared by the device binary and the
// simulator.
type Config struct {
	FBDevice       string
	FPS            int
	CanvasMaxSide  int
	Splash         time.Duration
	SwipeThreshold int
	Debug          bool
	StdioLog       string
}

// Defaults are the values used when no environment variable is set.
func Defaults() Config {
	return Config{
		FBDevice:       "/dev/fb0",
		FPS:            30,
		CanvasMaxSide:  1280,
		Splash:         3 * time.Second,
		SwipeThreshold: 60,
	}
}

// LoadFromEnv overlays environment variables on defaults. Out-of-range or
// malformed values are errors rather than silently ignored.
func LoadFromEnv(defaults Config) (Config, error) {
	cfg := defaults
	var err error

	if cfg.FBDevice, err = readRequiredOrDefault(EnvFBDevice, defaults.FBDevice); err != nil {
		return Config{}, err
	}
	if cfg.FPS, err = readInt(EnvFPS, defaults.FPS, minFPS, maxFPS); err != nil {
		return Config{}, err
	}
	if cfg.CanvasMaxSide, err = readInt(EnvCanvasMax, defaults.CanvasMaxSide, minCanvasSide, maxCanvasSide); err != nil {
		return Config{}, err
	}
	if cfg.Splash, err = readDuration(EnvSplash, defaults.Splash); err != nil {
		return Config{}, err
	}
	if cfg.SwipeThreshold, err = readInt(EnvSwipeThreshold, defaults.SwipeThreshold, minSwipeThreshold, maxSwipeThreshold); err != nil {
		return Config{}, err
	}
	if cfg.Debug, err = readBool(EnvDebug, defaults.Debug); err != nil {
		return Config{}, err
	}
	if raw, ok := os.LookupEnv(EnvStdioLog); ok {
		cfg.StdioLog = strings.TrimSpace(raw)
	}
	return cfg, nil
}

// Validate checks values after flag overrides have been applied.
func (c Config) Validate() error {
	if strings.TrimSpace(c.FBDevice) == "" {
		return fmt.Errorf("framebuffer device must not be empty")
	}
	if c.FPS < minFPS || c.FPS > maxFPS {
		return fmt.Errorf("fps must be between %d and %d", minFPS, maxFPS)
	}
	if c.CanvasMaxSide < minCanvasSide || c.CanvasMaxSide > maxCanvasSide {
		return fmt.Errorf("canvas max side must be between %d and %d", minCanvasSide, maxCanvasSide)
	}
	if c.Splash < 0 {
		return fmt.Errorf("splash duration must not be negative")
	}
	if c.SwipeThreshold < minSwipeThreshold || c.SwipeThreshold > maxSwipeThreshold {
		return fmt.Errorf("swipe threshold must be between %d and %d", minSwipeThreshold, maxSwipeThreshold)
	}
	return nil
}

func readRequiredOrDefault(key, fallback string) (string, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}
	return raw, nil
}

func readInt(key string, fallback, min, max int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return parsed, nil
}

func readBool(key string, fallback bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean (got %q): %w", key, raw, err)
	}
	return parsed, nil
}

// readDuration accepts Go durations; zero disables the splash.
func readDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return parsed, nil
}
