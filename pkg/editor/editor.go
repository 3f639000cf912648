package editor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/justyntemme/amplife/pkg/framework/debug"
)

var (
	// ErrAlreadyOpen is returned when a window is requested while one is open.
	ErrAlreadyOpen = errors.New("editor already open")
	// ErrNoWindowFactory is returned when the editor has no way to create a window.
	ErrNoWindowFactory = errors.New("no window factory")
)

// Window is a platform window embedded in the host's parent window.
type Window interface {
	// PollEvent returns the next pending pointer event without blocking.
	PollEvent() (Event, bool)
	// Draw renders v. It is only called when v differs from the last frame.
	Draw(v View)
	Close() error
}

// WindowFactory creates a window of the layout's size inside the parent
// identified by handle.
type WindowFactory func(handle uintptr, layout Layout) (Window, error)

// Config configures an Editor. Zero values select the defaults.
type Config struct {
	Layout      Layout
	Sensitivity float64
	Factory     WindowFactory
	Listener    EditListener
	Logger      *debug.Logger
	// Label captions the knob in every View.
	Label       string
}

// Editor owns at most one open window and its session.
//
// Listener callbacks are delivered after the editor's lock is released, so a
// listener may call back into the editor.
type Editor struct {
	mu     sync.Mutex
	store  Store
	cfg    Config
	logger *debug.Logger

	window  Window
	bridge  *Bridge
	pending noticeQueue
}

type noticeKind uint8

const (
	noticeBegin noticeKind = iota
	noticePerform
	noticeEnd
)

type notice struct {
	kind  noticeKind
	value float64
}

// noticeQueue records the bridge's notifications while the lock is held.
type noticeQueue struct {
	notices []notice
}

func (q *noticeQueue) BeginEdit() {
	q.notices = append(q.notices, notice{kind: noticeBegin})
}

func (q *noticeQueue) PerformEdit(value float64) {
	q.notices = append(q.notices, notice{kind: noticePerform, value: value})
}

func (q *noticeQueue) EndEdit() {
	q.notices = append(q.notices, notice{kind: noticeEnd})
}

// take empties the queue. Must hold the editor lock.
func (q *noticeQueue) take() []notice {
	n := q.notices
	q.notices = nil
	return n
}

// deliver forwards notices to the listener. Must not hold the editor lock.
func deliver(l EditListener, notices []notice) {
	for _, n := range notices {
		switch n.kind {
		case noticeBegin:
			l.BeginEdit()
		case noticePerform:
			l.PerformEdit(n.value)
		case noticeEnd:
			l.EndEdit()
		}
	}
}

// New creates a closed editor for store.
func New(store Store, cfg Config) *Editor {
	if cfg.Layout.Width <= 0 || cfg.Layout.Height <= 0 {
		cfg.Layout = DefaultLayout()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = debug.Default()
	}
	if cfg.Listener == nil {
		cfg.Listener = nopListener{}
	}
	return &Editor{
		store:  store,
		cfg:    cfg,
		logger: logger.With("editor"),
	}
}

// Size returns the window size in pixels.
func (e *Editor) Size() (width, height int) {
	return e.cfg.Layout.Width, e.cfg.Layout.Height
}

// Open creates the window inside the parent handle and starts a new session.
// It returns false if a window is already open or could not be created; the
// store is unaffected either way.
func (e *Editor) Open(handle uintptr) bool {
	if err := e.open(handle); err != nil {
		e.logger.Warn("open: %v", err)
		return false
	}
	return true
}

func (e *Editor) open(handle uintptr) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.window != nil {
		return ErrAlreadyOpen
	}
	if e.cfg.Factory == nil {
		return ErrNoWindowFactory
	}

	w, err := e.cfg.Factory(handle, e.cfg.Layout)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	if w == nil {
		return fmt.Errorf("create window: %w", ErrNoWindowFactory)
	}

	e.window = w
	e.bridge = NewBridge(e.store, e.cfg.Layout, e.cfg.Sensitivity, &e.pending)
	e.logger.Debug("opened %dx%d", e.cfg.Layout.Width, e.cfg.Layout.Height)
	return nil
}

// IsOpen reports whether a window is open.
func (e *Editor) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.window != nil
}

// Idle runs one frame: it feeds pending window events to the session, polls
// the store and redraws when the view changed. It does nothing while closed.
func (e *Editor) Idle() {
	e.mu.Lock()
	if e.window == nil {
		e.mu.Unlock()
		return
	}
	for {
		ev, ok := e.window.PollEvent()
		if !ok {
			break
		}
		e.bridge.HandleEvent(ev)
	}
	if view, changed := e.bridge.Poll(); changed {
		view.Label = e.cfg.Label
		e.window.Draw(view)
	}
	notices := e.pending.take()
	e.mu.Unlock()

	deliver(e.cfg.Listener, notices)
}

// Close destroys the window and its session. A drag in progress is abandoned
// with no further write. Closing a closed editor does nothing.
func (e *Editor) Close() {
	e.mu.Lock()
	if e.window == nil {
		e.mu.Unlock()
		return
	}
	e.bridge.Cancel()
	if err := e.window.Close(); err != nil {
		e.logger.Warn("close window: %v", err)
	}
	e.window = nil
	e.bridge = nil
	notices := e.pending.take()
	e.mu.Unlock()

	e.logger.Debug("closed")
	deliver(e.cfg.Listener, notices)
}
