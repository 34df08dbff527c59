package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the recognized scrollmux options.
type Settings struct {
	// ResetIntervalMs is the debounce quiet period in milliseconds.
	ResetIntervalMs int `toml:"reset_interval_ms"`

	// FallbackWidth and FallbackHeight are used when no real surface is
	// measurable yet (pre-attachment rendering).
	FallbackWidth  int `toml:"fallback_width"`
	FallbackHeight int `toml:"fallback_height"`

	// ScriptPath optionally names a Lua hook script.
	ScriptPath string `toml:"script_path"`
}

// DefaultSettings returns the built-in defaults: a 150ms reset interval
// and an 80x24 fallback.
func DefaultSettings() Settings {
	return Settings{
		ResetIntervalMs: 150,
		FallbackWidth:   80,
		FallbackHeight:  24,
	}
}

// ResetInterval returns the reset interval as a duration.
func (s Settings) ResetInterval() time.Duration {
	return time.Duration(s.ResetIntervalMs) * time.Millisecond
}

// Validate checks the settings for out-of-range values.
func (s Settings) Validate() error {
	if s.ResetIntervalMs <= 0 {
		return fmt.Errorf("%w: %dms", ErrInvalidInterval, s.ResetIntervalMs)
	}
	if s.FallbackWidth < 0 || s.FallbackHeight < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidFallback, s.FallbackWidth, s.FallbackHeight)
	}
	return nil
}

// Load reads settings from a TOML file. A missing file yields the
// defaults without an error. Fields absent from the file keep their
// default values.
func Load(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return DefaultSettings(), fmt.Errorf("config file %s: %w", path, err)
	}
	return settings, nil
}
