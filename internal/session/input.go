// internal/session/input.go
//
// Pointer-gesture recognition as an explicit state machine, decoupled from
// any rendering. The UI feeds discrete pointer events (down / move / up)
// and gets back a resolved gesture: a click, or a drag from the down point
// to the up point. Drag-vs-click is disambiguated by a movement-distance
// threshold, so a jittery tap still counts as a click.
//
// States: idle → tracking (pointer down, under threshold) → dragging.
// Up resolves either state back to idle.

package session

import "math"

// GestureKind distinguishes resolved gestures.
type GestureKind int

const (
	GestureNone GestureKind = iota // pointer up without a preceding down
	GestureClick
	GestureDrag
)

// Gesture is the outcome of a completed pointer interaction.
type Gesture struct {
	Kind GestureKind
	// Down point and up point, in the caller's coordinate space.
	FromX, FromY float64
	ToX, ToY     float64
}

// DefaultDragThreshold is the movement distance (same units as the event
// coordinates) past which a tracked pointer becomes a drag.
const DefaultDragThreshold = 5.0

type inputState int

const (
	stateIdle inputState = iota
	stateTracking
	stateDragging
)

// Recognizer tracks one pointer through a down/move/up cycle.
// Zero value is not ready; use NewRecognizer.
type Recognizer struct {
	threshold    float64
	state        inputState
	downX, downY float64
}

// NewRecognizer returns a recognizer with the given drag threshold;
// non-positive values fall back to DefaultDragThreshold.
func NewRecognizer(threshold float64) *Recognizer {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &Recognizer{threshold: threshold}
}

// Down begins tracking at (x, y). A second down restarts tracking.
func (r *Recognizer) Down(x, y float64) {
	r.state = stateTracking
	r.downX, r.downY = x, y
}

// Move updates the tracked pointer. Once the distance from the down point
// passes the threshold the interaction is a drag for good; moving back
// under the threshold does not demote it.
func (r *Recognizer) Move(x, y float64) {
	if r.state != stateTracking {
		return
	}
	if math.Hypot(x-r.downX, y-r.downY) >= r.threshold {
		r.state = stateDragging
	}
}

// Dragging reports whether the current interaction has become a drag.
func (r *Recognizer) Dragging() bool { return r.state == stateDragging }

// Up resolves the interaction and returns the gesture, resetting to idle.
func (r *Recognizer) Up(x, y float64) Gesture {
	g := Gesture{FromX: r.downX, FromY: r.downY, ToX: x, ToY: y}
	switch r.state {
	case stateDragging:
		g.Kind = GestureDrag
	case stateTracking:
		g.Kind = GestureClick
	default:
		g.Kind = GestureNone
	}
	r.state = stateIdle
	return g
}
