package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/justyntemme/amplife/pkg/framework/debug"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	if cfg.InitialValue != 0.5 || cfg.Editor.Scale != 0.5 || cfg.MIDI.Channel != -1 {
		t.Errorf("Default() = %+v", cfg)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
sample_rate: 44100
initial_value: 0.25
editor:
  sensitivity: 0.005
midi:
  enabled: true
  controller: 1
log:
  level: debug
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.SampleRate != 44100 || cfg.InitialValue != 0.25 {
		t.Errorf("top level = %+v", cfg)
	}
	if cfg.Editor.Sensitivity != 0.005 || !cfg.Editor.Enabled || cfg.Editor.Scale != 0.5 {
		t.Errorf("editor = %+v, want defaults kept", cfg.Editor)
	}
	if !cfg.MIDI.Enabled || cfg.MIDI.Controller != 1 || cfg.MIDI.Channel != -1 {
		t.Errorf("midi = %+v", cfg.MIDI)
	}
	if cfg.FramesPerBuffer != 256 || cfg.BlockSize != 512 {
		t.Errorf("unset fields lost their defaults: %+v", cfg)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"Bad sample rate", "sample_rate: 0", "sample_rate"},
		{"Initial value", "initial_value: 1.5", "initial_value"},
		{"Block size", "block_size: -1", "block_size"},
		{"Negative sensitivity", "editor:\n  sensitivity: -1", "sensitivity"},
		{"Channel", "midi:\n  channel: 16", "midi.channel"},
		{"Controller", "midi:\n  controller: 200", "midi.controller"},
		{"Log level", "log:\n  level: chatty", "log.level"},
		{"Syntax", "sample_rate: [", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("Explicit file", func(t *testing.T) {
		path := filepath.Join(dir, "amplife.yaml")
		if err := os.WriteFile(path, []byte("initial_value: 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.InitialValue != 1 || cfg.Path != path {
			t.Errorf("Load() = %+v", cfg)
		}
	})

	t.Run("Explicit missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
			t.Error("Load() of a missing explicit file succeeded")
		}
	})

	t.Run("Default location missing", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "empty"))
		t.Setenv("HOME", filepath.Join(dir, "home"))
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load(\"\") error: %v", err)
		}
		if cfg.Path != "" || cfg.InitialValue != 0.5 {
			t.Errorf("Load(\"\") = %+v, want defaults", cfg)
		}
	})
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"

	logger, err := cfg.Logger(false)
	if err != nil {
		t.Fatal(err)
	}
	if logger.Level() != debug.LogLevelWarn {
		t.Errorf("Level() = %v, want WARN", logger.Level())
	}

	logger, err = cfg.Logger(true)
	if err != nil {
		t.Fatal(err)
	}
	if logger.Level() != debug.LogLevelDebug {
		t.Errorf("verbose Level() = %v, want DEBUG", logger.Level())
	}

	cfg.Log.File = filepath.Join(t.TempDir(), "log", "amplife.log")
	logger, err = cfg.Logger(false)
	if err != nil {
		t.Fatal(err)
	}
	logger.Warn("to file")
	logger.Close()
	if data, err := os.ReadFile(cfg.Log.File); err != nil || !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q, %v", data, err)
	}
}
