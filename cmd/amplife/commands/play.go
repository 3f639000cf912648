package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gopxl/beep/v2/wav"
	"github.com/spf13/cobra"

	"github.com/justyntemme/amplife/internal/standalone"
	"github.com/justyntemme/amplife/internal/standalone/playback"
	"github.com/justyntemme/amplife/internal/standalone/window"
	"github.com/justyntemme/amplife/pkg/plugin"
)

var (
	playNoEditor bool
	playMIDI     bool
	playValue    float64
)

var playCmd = &cobra.Command{
	Use:   "play <file.wav>",
	Short: "Play a WAV file through the plugin",
	Long: `Play a WAV file on the default output device with the plugin in the
signal path. The editor window adjusts the gain while the file plays.

Examples:
  amplife play song.wav
  amplife play --value 0.8 --no-editor song.wav`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playNoEditor, "no-editor", false, "do not open the editor window")
	playCmd.Flags().BoolVar(&playMIDI, "midi", false, "map the configured MIDI controller to the gain")
	playCmd.Flags().Float64Var(&playValue, "value", 0.5, "initial normalized gain value in [0, 1]")

	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()
	if playNoEditor {
		cfg.Editor.Enabled = false
	}
	if playMIDI {
		cfg.MIDI.Enabled = true
	}
	if cmd.Flags().Changed("value") {
		if playValue < 0 || playValue > 1 {
			return fmt.Errorf("--value must be within [0, 1], got %g", playValue)
		}
		cfg.InitialValue = playValue
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	src, format, err := wav.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}
	defer src.Close()

	win := window.New()
	inst := newInstance(cfg, logger, plugin.WithWindowFactory(win.Factory))
	defer inst.Close()

	detach, err := attachMIDI(cfg, inst, logger)
	if err != nil {
		return err
	}
	defer detach()

	streamer := standalone.NewStreamer(src, inst, cfg.BlockSize)
	player, err := playback.New(int(format.SampleRate))
	if err != nil {
		return err
	}
	defer player.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Info("playing %s (%d Hz, %d ch)", args[0], format.SampleRate, format.NumChannels)
	player.Play(standalone.NewReader(streamer, cfg.BlockSize))

	done := make(chan error, 1)
	go func() {
		done <- player.Wait(ctx)
		cancel()
	}()

	err = waitOrEdit(ctx, cfg.Editor.Enabled, inst, win)
	cancel()
	if werr := <-done; err == nil && werr != nil && !errors.Is(werr, context.Canceled) {
		err = werr
	}
	if err != nil {
		return err
	}
	return streamer.Err()
}
