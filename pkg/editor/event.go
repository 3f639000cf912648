package editor

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Event is a pointer event delivered by a Window, in window pixels with the
// origin at the top-left corner. Coordinates may be negative or beyond the
// window size while the pointer is captured outside it.
type Event interface {
	isEvent()
}

// PointerMove reports a new pointer position.
type PointerMove struct {
	X, Y float64
}

// PointerDown reports a button press at the last known pointer position.
type PointerDown struct {
	Button Button
}

// PointerUp reports a button release.
type PointerUp struct {
	Button Button
}

// PointerLeave reports that the pointer left the window. Released is true
// when the window also lost the button, ending any drag.
type PointerLeave struct {
	Released bool
}

func (PointerMove) isEvent()  {}
func (PointerDown) isEvent()  {}
func (PointerUp) isEvent()    {}
func (PointerLeave) isEvent() {}
