// Package plugin is the host-facing surface of one ampli-Fe instance: the
// parameter calls, the audio callback and the editor calls a plugin protocol
// shim forwards to Go.
package plugin

import (
	"github.com/justyntemme/amplife/pkg/editor"
	"github.com/justyntemme/amplife/pkg/framework/debug"
	fplugin "github.com/justyntemme/amplife/pkg/framework/plugin"
	"github.com/justyntemme/amplife/pkg/framework/process"
	"github.com/justyntemme/amplife/pkg/framework/state"
)

// Version of the plugin.
const Version = "0.1.0"

var info = fplugin.Info{
	ID:         "com.amplife.gain",
	Name:       "ampli-Fe",
	Version:    Version,
	Vendor:     "amplife",
	Category:   "Fx",
	Inputs:     2,
	Outputs:    2,
	Parameters: 1,
}

// Instance is one constructed copy of the plugin. Every instance owns its
// own store, engine and editor; nothing is shared between instances.
type Instance struct {
	store  *state.Store
	engine *process.Engine
	editor *editor.Editor
	host   Host
	logger *debug.Logger
}

type options struct {
	host        Host
	logger      *debug.Logger
	factory     editor.WindowFactory
	sensitivity float64
	scale       float64
	initial     *float64
}

// Option configures New.
type Option func(*options)

// WithHost sets the receiver of edit notifications from the editor.
func WithHost(h Host) Option {
	return func(o *options) { o.host = h }
}

// WithLogger sets the logger. The audio callback never logs.
func WithLogger(l *debug.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithWindowFactory sets how the editor creates its window. Without one,
// EditorOpen fails.
func WithWindowFactory(f editor.WindowFactory) Option {
	return func(o *options) { o.factory = f }
}

// WithSensitivity sets the knob change per pixel of vertical drag.
func WithSensitivity(s float64) Option {
	return func(o *options) { o.sensitivity = s }
}

// WithEditorScale sets the display scale of the editor window.
func WithEditorScale(scale float64) Option {
	return func(o *options) { o.scale = scale }
}

// WithInitialValue sets the normalized value the instance starts at.
func WithInitialValue(v float64) Option {
	return func(o *options) { o.initial = &v }
}

// New creates an instance at its default value (unity gain).
func New(opts ...Option) *Instance {
	o := options{host: NopHost{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = debug.Default()
	}

	store := state.NewStore()
	if o.initial != nil {
		store.Write(*o.initial)
	}

	i := &Instance{
		store:  store,
		engine: process.NewEngine(store),
		host:   o.host,
		logger: o.logger,
	}
	i.editor = editor.New(store, editor.Config{
		Layout:      editor.NewLayout(o.scale),
		Sensitivity: o.sensitivity,
		Factory:     o.factory,
		Listener:    hostListener{host: o.host, index: 0},
		Logger:      o.logger,
		Label:       store.Parameter().Name,
	})
	return i
}

// Info returns the identity of the plugin.
func (i *Instance) Info() fplugin.Info {
	return info
}

// Store returns the parameter store of the instance.
func (i *Instance) Store() *state.Store {
	return i.store
}

// ProcessReplacing is the audio callback. It overwrites outputs with inputs
// scaled by the current gain. Audio thread only; never allocates or locks.
func (i *Instance) ProcessReplacing(inputs, outputs [][]float32, numSampleFrames int) {
	i.engine.ProcessReplacing(inputs, outputs, numSampleFrames)
}

// EditorOpen opens the editor inside the host's parent window.
func (i *Instance) EditorOpen(handle uintptr) (ok bool) {
	defer i.recoverPanic("EditorOpen")
	return i.editor.Open(handle)
}

// EditorClose closes the editor. An in-flight drag is abandoned.
func (i *Instance) EditorClose() {
	defer i.recoverPanic("EditorClose")
	i.editor.Close()
}

// EditorIdle runs one UI frame.
func (i *Instance) EditorIdle() {
	defer i.recoverPanic("EditorIdle")
	i.editor.Idle()
}

// EditorIsOpen reports whether the editor window exists.
func (i *Instance) EditorIsOpen() bool {
	return i.editor.IsOpen()
}

// EditorSize returns the editor window size in pixels.
func (i *Instance) EditorSize() (width, height int) {
	return i.editor.Size()
}

// Close is host teardown. The instance must not be used afterwards.
func (i *Instance) Close() {
	i.EditorClose()
	i.logger.Debug("instance closed")
}

// recoverPanic keeps a panic in a UI callback from unwinding into the host.
func (i *Instance) recoverPanic(operation string) {
	if r := recover(); r != nil {
		i.logger.Error("panic in %s: %v", operation, r)
	}
}
