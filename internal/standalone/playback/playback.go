// Package playback plays a processed stream on the default output with oto.
package playback

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player owns the oto context. Only one may exist per process.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
}

// New creates the output context for interleaved float32 stereo at sampleRate.
func New(sampleRate int) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	<-ready
	return &Player{ctx: ctx}, nil
}

// Play starts pulling r, replacing whatever was playing.
func (p *Player) Play(r io.Reader) {
	if p.player != nil {
		p.player.Close()
	}
	p.player = p.ctx.NewPlayer(r)
	p.player.Play()
}

// Wait blocks until playback finishes or ctx is done.
func (p *Player) Wait(ctx context.Context) error {
	if p.player == nil {
		return nil
	}
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for p.player.IsPlaying() {
		select {
		case <-ctx.Done():
			p.player.Pause()
			return ctx.Err()
		case <-tick.C:
		}
	}
	return p.player.Err()
}

// Close stops playback.
func (p *Player) Close() error {
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}
