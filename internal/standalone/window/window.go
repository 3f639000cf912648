// Package window hosts the plugin editor in an Ebitengine window, standing in
// for the parent window a plugin host would provide.
package window

import (
	"context"
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/justyntemme/amplife/internal/standalone"
	"github.com/justyntemme/amplife/pkg/editor"
)

var (
	background = color.RGBA{0x1e, 0x1f, 0x26, 0xff}
	knobFace   = color.RGBA{0x3a, 0x3d, 0x4a, 0xff}
	knobRim    = color.RGBA{0x8a, 0x8f, 0xa3, 0xff}
	knobActive = color.RGBA{0xf2, 0xa6, 0x3b, 0xff}
	pointer    = color.RGBA{0xf4, 0xf4, 0xf4, 0xff}
)

// Host is the editor surface of a plugin instance.
type Host interface {
	EditorOpen(handle uintptr) bool
	EditorIdle()
	EditorClose()
	EditorIsOpen() bool
}

// Window implements editor.Window on top of the Ebitengine game loop. Events
// are produced in Update and consumed by the editor in the same frame.
type Window struct {
	layout  editor.Layout
	tracker standalone.PointerTracker
	events  []editor.Event
	view    editor.View
	drawn   bool
	closed  bool
}

// New creates a window; pass its Factory to the plugin.
func New() *Window {
	return &Window{layout: editor.DefaultLayout()}
}

// Factory is an editor.WindowFactory handing out w. The handle is ignored:
// Ebitengine owns a top-level window.
func (w *Window) Factory(handle uintptr, layout editor.Layout) (editor.Window, error) {
	w.layout = layout
	w.closed = false
	w.events = w.events[:0]
	return w, nil
}

// PollEvent implements editor.Window.
func (w *Window) PollEvent() (editor.Event, bool) {
	if len(w.events) == 0 {
		return nil, false
	}
	ev := w.events[0]
	w.events = w.events[1:]
	return ev, true
}

// Draw implements editor.Window by keeping v for the next rendered frame.
func (w *Window) Draw(v editor.View) {
	w.view = v
	w.drawn = true
}

// Close implements editor.Window.
func (w *Window) Close() error {
	w.closed = true
	return nil
}

type game struct {
	ctx  context.Context
	host Host
	win  *Window
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || g.win.closed || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	l := g.win.layout
	g.win.events = g.win.tracker.Update(standalone.PointerState{
		X:      float64(x),
		Y:      float64(y),
		Left:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Inside: x >= 0 && y >= 0 && x < l.Width && y < l.Height,
	}, g.win.events)

	g.host.EditorIdle()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if !g.win.drawn {
		return
	}

	l, v := g.win.layout, g.win.view
	cx, cy, r := float32(l.KnobX), float32(l.KnobY), float32(l.KnobRadius)

	rim := knobRim
	if v.Dragging {
		rim = knobActive
	}
	vector.DrawFilledCircle(screen, cx, cy, r, knobFace, true)
	vector.StrokeCircle(screen, cx, cy, r, 4, rim, true)

	tx, ty := l.KnobTip(v.Value)
	vector.StrokeLine(screen, cx, cy, float32(tx), float32(ty), 6, pointer, true)

	ebitenutil.DebugPrintAt(screen, v.Label, 40, 40)
	ebitenutil.DebugPrintAt(screen, v.Text+" x", int(l.KnobX)-16, int(l.KnobY+l.KnobRadius)+16)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.win.layout.Width, g.win.layout.Height
}

// Run opens the editor of host in w and runs the window on the calling
// goroutine, which must be the main one, until ctx is done or the window is
// closed.
func Run(ctx context.Context, host Host, w *Window, title string) error {
	if !host.EditorOpen(0) {
		return errors.New("editor failed to open")
	}
	defer host.EditorClose()

	ebiten.SetWindowSize(w.layout.Width, w.layout.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(&game{ctx: ctx, host: host, win: w})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
