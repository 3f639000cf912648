package commands

import (
	"github.com/spf13/cobra"

	"github.com/justyntemme/amplife/cmd/amplife/internal/config"
	"github.com/justyntemme/amplife/pkg/framework/debug"
	"github.com/justyntemme/amplife/pkg/plugin"
)

var (
	// Global flags
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "amplife",
	Short: "Standalone host for the ampli-Fe gain plugin",
	Long: `amplife - run the ampli-Fe gain plugin outside a DAW.

The host loads the plugin in-process and drives it the way a plugin host
would: audio blocks from a file or the sound card, editor idle calls from
a window, and parameter changes from MIDI.

Configuration is read from the OS config directory:
  macOS:   ~/Library/Application Support/amplife/config.yaml
  Linux:   ~/.config/amplife/config.yaml
  Windows: %AppData%/amplife/config.yaml

Examples:
  # Halve the level of a file
  amplife render -i in.wav -o out.wav --value 0.25

  # Play a file with the editor open
  amplife play song.wav

  # Process the microphone, gain on MIDI CC 7
  amplife live --midi`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
}

// setup loads the configuration and the logger it describes.
func setup() (*config.Config, *debug.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := cfg.Logger(verbose)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Path != "" {
		logger.Debug("loaded config from %s", cfg.Path)
	}
	return cfg, logger, nil
}

// newInstance creates a plugin instance configured from cfg.
func newInstance(cfg *config.Config, logger *debug.Logger, opts ...plugin.Option) *plugin.Instance {
	base := []plugin.Option{
		plugin.WithLogger(logger),
		plugin.WithHost(logHost{logger: logger.With("host")}),
		plugin.WithInitialValue(cfg.InitialValue),
		plugin.WithSensitivity(cfg.Editor.Sensitivity),
		plugin.WithEditorScale(cfg.Editor.Scale),
	}
	return plugin.New(append(base, opts...)...)
}

// logHost records the editor's automation gestures in the log.
type logHost struct {
	logger *debug.Logger
}

func (h logHost) BeginEdit(index int32) {
	h.logger.Debug("begin edit %d", index)
}

func (h logHost) PerformEdit(index int32, value float64) {
	h.logger.Debug("perform edit %d = %.4f", index, value)
}

func (h logHost) EndEdit(index int32) {
	h.logger.Debug("end edit %d", index)
}
