package plugin

// Host receives the edit gestures made in the editor so it can record them
// as automation. Calls arrive on the UI thread.
type Host interface {
	BeginEdit(index int32)
	PerformEdit(index int32, value float64)
	EndEdit(index int32)
}

// NopHost ignores every notification.
type NopHost struct{}

func (NopHost) BeginEdit(int32)            {}
func (NopHost) PerformEdit(int32, float64) {}
func (NopHost) EndEdit(int32)              {}

// hostListener forwards editor gestures on one parameter to the host.
type hostListener struct {
	host  Host
	index int32
}

func (l hostListener) BeginEdit() {
	l.host.BeginEdit(l.index)
}

func (l hostListener) PerformEdit(value float64) {
	l.host.PerformEdit(l.index, value)
}

func (l hostListener) EndEdit() {
	l.host.EndEdit(l.index)
}
