package standalone

import "github.com/justyntemme/amplife/pkg/editor"

// PointerState is the pointer as sampled once per frame.
type PointerState struct {
	X, Y        float64
	Left, Right bool
	Inside      bool // cursor within the window
}

// PointerTracker turns successive pointer samples into editor events.
type PointerTracker struct {
	prev    PointerState
	started bool
}

// Update appends the events between the previous sample and cur to events:
// movement first, then button edges, then leaving the window.
func (t *PointerTracker) Update(cur PointerState, events []editor.Event) []editor.Event {
	prev := t.prev
	if !t.started {
		prev = PointerState{X: cur.X, Y: cur.Y, Inside: cur.Inside}
		t.started = true
		if cur.Inside {
			events = append(events, editor.PointerMove{X: cur.X, Y: cur.Y})
		}
	}

	// Outside the window only a held button keeps the pointer captured.
	captured := cur.Inside || prev.Left
	if captured && (cur.X != prev.X || cur.Y != prev.Y) {
		events = append(events, editor.PointerMove{X: cur.X, Y: cur.Y})
	}

	events = appendEdge(events, prev.Left, cur.Left, editor.ButtonLeft)
	events = appendEdge(events, prev.Right, cur.Right, editor.ButtonRight)

	if prev.Inside && !cur.Inside {
		events = append(events, editor.PointerLeave{Released: !cur.Left})
	}

	t.prev = cur
	return events
}

func appendEdge(events []editor.Event, was, is bool, b editor.Button) []editor.Event {
	switch {
	case is && !was:
		return append(events, editor.PointerDown{Button: b})
	case was && !is:
		return append(events, editor.PointerUp{Button: b})
	}
	return events
}
