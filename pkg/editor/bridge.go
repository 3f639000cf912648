// Package editor turns pointer gestures on the knob into parameter writes and
// parameter changes into redraws.
//
// Everything here runs on the UI thread. The editor never pushes values to
// the window: each frame it asks the store whether the value changed since
// the last frame and only then rebuilds the view.
package editor

import (
	"math"

	"github.com/justyntemme/amplife/pkg/framework/param"
)

// ResetValue is written by a right click on the knob.
const ResetValue = 0.5

// Store is the part of the parameter store the editor uses.
type Store interface {
	Read() float64
	Write(v float64)
	Revision() param.Revision
	HasChangedSince(token param.Revision) (bool, param.Revision)
}

// EditListener is told about every gesture and write made from the editor so
// the host can record automation.
type EditListener interface {
	BeginEdit()
	PerformEdit(value float64)
	EndEdit()
}

type nopListener struct{}

func (nopListener) BeginEdit()          {}
func (nopListener) PerformEdit(float64) {}
func (nopListener) EndEdit()            {}

// DragState is the state of the knob gesture.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "Dragging"
	}
	return "Idle"
}

// Session is the per-window interface state. It exists only while the
// editor is open.
type Session struct {
	State DragState
	// Valid while Dragging
	AnchorValue float64
	AnchorY     float64

	PointerX, PointerY float64

	token  param.Revision
	primed bool
}

// View is what a window draws for one frame.
type View struct {
	Value     float64 // normalized
	Gain      float64
	Text      string
	KnobAngle float64 // radians, clockwise from 12 o'clock
	Dragging  bool
	Label     string
}

// NewView derives the drawable state for a normalized value.
func NewView(value float64) View {
	value = param.Clamp(value)
	g := value * param.MaxGain
	return View{
		Value:     value,
		Gain:      g,
		Text:      param.MultiplierFormatter(g),
		KnobAngle: KnobAngle(value),
	}
}

// Bridge runs the drag state machine of one editor session.
type Bridge struct {
	store       Store
	layout      Layout
	sensitivity float64
	listener    EditListener

	session Session
	view    View
}

// NewBridge creates an idle session. A non-positive sensitivity uses the
// layout's default; a nil listener discards notifications.
func NewBridge(store Store, layout Layout, sensitivity float64, listener EditListener) *Bridge {
	if sensitivity <= 0 {
		sensitivity = layout.Sensitivity()
	}
	if listener == nil {
		listener = nopListener{}
	}
	return &Bridge{
		store:       store,
		layout:      layout,
		sensitivity: sensitivity,
		listener:    listener,
	}
}

// Session returns a copy of the current session state.
func (b *Bridge) Session() Session {
	return b.session
}

// HandleEvent advances the state machine by one pointer event.
func (b *Bridge) HandleEvent(ev Event) {
	s := &b.session

	switch ev := ev.(type) {
	case PointerMove:
		s.PointerX, s.PointerY = ev.X, ev.Y
		if s.State == Dragging {
			b.write(s.AnchorValue + (s.AnchorY-ev.Y)*b.sensitivity)
		}

	case PointerDown:
		if !b.layout.Contains(s.PointerX, s.PointerY) {
			return
		}
		switch ev.Button {
		case ButtonLeft:
			if s.State == Dragging {
				return
			}
			s.State = Dragging
			s.AnchorValue = b.store.Read()
			s.AnchorY = s.PointerY
			b.listener.BeginEdit()
		case ButtonRight:
			if s.State == Dragging {
				b.write(ResetValue)
				return
			}
			b.listener.BeginEdit()
			b.write(ResetValue)
			b.listener.EndEdit()
		}

	case PointerUp:
		if ev.Button == ButtonLeft {
			b.endDrag()
		}

	case PointerLeave:
		// Outside the window the position is unknown; a press delivered
		// before the next move must not hit the knob.
		s.PointerX, s.PointerY = math.Inf(-1), math.Inf(-1)
		if ev.Released {
			b.endDrag()
		}
	}
}

// Cancel abandons an in-flight drag without writing.
func (b *Bridge) Cancel() {
	b.endDrag()
}

func (b *Bridge) endDrag() {
	if b.session.State != Dragging {
		return
	}
	b.session.State = Idle
	b.listener.EndEdit()
}

func (b *Bridge) write(v float64) {
	v = param.Clamp(v)
	b.store.Write(v)
	b.listener.PerformEdit(v)
}

// Poll checks the store for a change since the previous poll. It rebuilds the
// view and returns true on a value change, on a drag starting or ending, and
// on the first poll of the session.
func (b *Bridge) Poll() (View, bool) {
	s := &b.session
	dragging := s.State == Dragging

	changed, token := b.store.HasChangedSince(s.token)
	if s.primed && !changed {
		if dragging == b.view.Dragging {
			return b.view, false
		}
		b.view.Dragging = dragging
		return b.view, true
	}
	s.primed = true
	s.token = token

	b.view = NewView(b.store.Read())
	b.view.Dragging = dragging
	return b.view, true
}
