// Package config loads the standalone host settings from YAML.
//
// Every field is optional; missing fields keep their defaults:
//
//	sample_rate: 48000
//	frames_per_buffer: 256
//	block_size: 512
//	initial_value: 0.5
//	editor:
//	  enabled: true
//	  sensitivity: 0      # 0 = half the range over the window height
//	  scale: 0.5
//	midi:
//	  enabled: false
//	  port: ""            # empty = first input port
//	  channel: -1         # -1 = any
//	  controller: 7
//	log:
//	  level: info
//	  file: ""            # empty = stderr
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/justyntemme/amplife/pkg/framework/debug"
)

const (
	// appDir is the directory name under os.UserConfigDir().
	appDir = "amplife"

	// fileName is the config file looked up in the default location.
	fileName = "config.yaml"
)

// Config holds the standalone host settings.
type Config struct {
	SampleRate      float64 `yaml:"sample_rate"`
	FramesPerBuffer int     `yaml:"frames_per_buffer"`
	BlockSize       int     `yaml:"block_size"`
	InitialValue    float64 `yaml:"initial_value"`

	Editor EditorConfig `yaml:"editor"`
	MIDI   MIDIConfig   `yaml:"midi"`
	Log    LogConfig    `yaml:"log"`

	// Path is the file the config was read from, if any.
	Path string `yaml:"-"`
}

// EditorConfig configures the editor window.
type EditorConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Sensitivity float64 `yaml:"sensitivity"`
	Scale       float64 `yaml:"scale"`
}

// MIDIConfig selects the controller mapped to the gain.
type MIDIConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Port       string `yaml:"port"`
	Channel    int    `yaml:"channel"`
	Controller int    `yaml:"controller"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		SampleRate:      48000,
		FramesPerBuffer: 256,
		BlockSize:       512,
		InitialValue:    0.5,
		Editor: EditorConfig{
			Enabled: true,
			Scale:   0.5,
		},
		MIDI: MIDIConfig{
			Channel:    -1,
			Controller: 7,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns the config file in the OS config directory.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads path over the defaults. An empty path tries DefaultPath and
// falls back to the defaults when that file does not exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges.
func (c *Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("sample_rate must be positive, got %g", c.SampleRate)
	case c.FramesPerBuffer < 0:
		return fmt.Errorf("frames_per_buffer must not be negative, got %d", c.FramesPerBuffer)
	case c.BlockSize <= 0:
		return fmt.Errorf("block_size must be positive, got %d", c.BlockSize)
	case c.InitialValue < 0 || c.InitialValue > 1:
		return fmt.Errorf("initial_value must be within [0, 1], got %g", c.InitialValue)
	case c.Editor.Sensitivity < 0:
		return fmt.Errorf("editor.sensitivity must not be negative, got %g", c.Editor.Sensitivity)
	case c.MIDI.Channel < -1 || c.MIDI.Channel > 15:
		return fmt.Errorf("midi.channel must be -1 or 0-15, got %d", c.MIDI.Channel)
	case c.MIDI.Controller < 0 || c.MIDI.Controller > 127:
		return fmt.Errorf("midi.controller must be 0-127, got %d", c.MIDI.Controller)
	}
	if _, err := debug.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Logger builds the logger described by the log section. verbose forces the
// debug level.
func (c *Config) Logger(verbose bool) (*debug.Logger, error) {
	level, err := debug.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = debug.LogLevelDebug
	}

	logger := debug.New(os.Stderr, "amplife", debug.DefaultFlags)
	if c.Log.File != "" {
		logger, err = debug.NewFileLogger(c.Log.File, "amplife", debug.DefaultFlags)
		if err != nil {
			return nil, err
		}
	}
	logger.SetLevel(level)
	return logger, nil
}
