package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gordonklaus/portaudio"
	"github.com/spf13/cobra"

	"github.com/justyntemme/amplife/internal/standalone/live"
	"github.com/justyntemme/amplife/internal/standalone/window"
	"github.com/justyntemme/amplife/pkg/plugin"
)

var (
	liveNoEditor bool
	liveMIDI     bool
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Run the plugin on the default sound card",
	Long: `Process the default input device to the default output device.

The PortAudio callback is the plugin's audio thread. The editor window runs
on the main goroutine; closing it or pressing Escape stops the host, as
does Ctrl-C.

Examples:
  amplife live
  amplife live --no-editor --midi`,
	RunE: runLive,
}

func init() {
	liveCmd.Flags().BoolVar(&liveNoEditor, "no-editor", false, "do not open the editor window")
	liveCmd.Flags().BoolVar(&liveMIDI, "midi", false, "map the configured MIDI controller to the gain")

	rootCmd.AddCommand(liveCmd)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()
	if liveNoEditor {
		cfg.Editor.Enabled = false
	}
	if liveMIDI {
		cfg.MIDI.Enabled = true
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio: %w", err)
	}
	defer portaudio.Terminate()

	if devices, err := live.Devices(); err == nil {
		logger.Info("%s", devices)
	}

	win := window.New()
	inst := newInstance(cfg, logger, plugin.WithWindowFactory(win.Factory))
	defer inst.Close()

	detach, err := attachMIDI(cfg, inst, logger)
	if err != nil {
		return err
	}
	defer detach()

	stream, err := live.Open(inst, cfg.SampleRate, cfg.FramesPerBuffer)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start stream: %w", err)
	}
	defer stream.Stop()
	logger.Info("running at %.0f Hz, gain %s", cfg.SampleRate, inst.GetParameterDisplay(0))

	return waitOrEdit(ctx, cfg.Editor.Enabled, inst, win)
}

// waitOrEdit runs the editor window until it closes or ctx is done. Without
// an editor it only waits for ctx.
func waitOrEdit(ctx context.Context, editor bool, inst *plugin.Instance, win *window.Window) error {
	if !editor {
		<-ctx.Done()
		return nil
	}
	return window.Run(ctx, inst, win, inst.Info().Name)
}
