package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the user-editable part of the configuration.
type Settings struct {
	Keys      KeySettings       `yaml:"keys"`
	Animation AnimationSettings `yaml:"animation"`
	Log       LogSettings       `yaml:"log"`
}

// KeySettings overrides the default keymaps. Maps go from key string
// (as reported by bubbletea, e.g. "alt+v") to action name.
type KeySettings struct {
	Leader      string            `yaml:"leader"`
	Bindings    map[string]string `yaml:"bindings"`
	LeaderTable map[string]string `yaml:"leader_table"`
}

type AnimationSettings struct {
	CloseFrames        int           `yaml:"close_frames"`
	CloseFrameInterval time.Duration `yaml:"close_frame_interval"`
	CloseFallback      time.Duration `yaml:"close_fallback"`
	Navigation         time.Duration `yaml:"navigation"`
	NewPane            time.Duration `yaml:"new_pane"`
}

type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Keys: KeySettings{Leader: "ctrl+a"},
		Animation: AnimationSettings{
			CloseFrames:        6,
			CloseFrameInterval: 30 * time.Millisecond,
			CloseFallback:      400 * time.Millisecond,
			Navigation:         150 * time.Millisecond,
			NewPane:            600 * time.Millisecond,
		},
	}
}

// LoadSettings reads path on top of the defaults. A missing file is not an
// error. An empty path means ConfigPath().
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return s, fmt.Errorf("failed to resolve config path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return DefaultSettings(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return s, nil
}

func (s Settings) validate() error {
	if s.Keys.Leader == "" {
		return errors.New("keys.leader must not be empty")
	}
	if s.Animation.CloseFrames < 0 {
		return fmt.Errorf("animation.close_frames must be >= 0, got %d", s.Animation.CloseFrames)
	}
	if s.Animation.CloseFallback <= 0 {
		return errors.New("animation.close_fallback must be positive")
	}
	return nil
}
