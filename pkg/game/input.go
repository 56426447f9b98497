package game

// KeyEventType distinguishes key presses from key releases.
type KeyEventType int

const (
	// KeyDown is emitted when a key is pressed.
	KeyDown KeyEventType = iota + 1
	// KeyUp is emitted when a key is released.
	KeyUp
)

func (t KeyEventType) String() string {
	switch t {
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	default:
		return "unknown"
	}
}

// KeyEvent is the most recent keyboard event reported by an InputSource.
// Seq increases by one for every new event so repeated presses of the same
// key can be told apart.
type KeyEvent struct {
	Type KeyEventType
	Key  string
	Seq  uint64
}

// InputSource is polled once per tick for the latest keyboard event.
// Only the latest event is visible; events between two polls are lost.
type InputSource interface {
	LastEvent() (KeyEvent, bool)
}

// keyboard is the per-tick input snapshot held by the engine.
type keyboard struct {
	last    KeyEvent
	has     bool
	prevSeq uint64
	fresh   bool
	stepped bool
}

// capture replaces the snapshot with the source's latest event. A press
// stays fresh across throttled ticks until a simulation step has seen it.
func (k *keyboard) capture(src InputSource) {
	if k.stepped {
		k.fresh = false
		k.stepped = false
	}
	if src == nil {
		return
	}
	ev, ok := src.LastEvent()
	k.last, k.has = ev, ok
	if ok && ev.Seq != k.prevSeq {
		k.fresh = true
		k.prevSeq = ev.Seq
	}
}

// step marks the current snapshot as seen by a simulation step.
func (k *keyboard) step() { k.stepped = true }

func (k *keyboard) down(key string) bool {
	return k.has && k.last.Type == KeyDown && k.last.Key == key
}

func (k *keyboard) up(key string) bool {
	return k.has && k.last.Type == KeyUp && k.last.Key == key
}

// pressed is true from the tick a new keydown for key was captured until
// the end of the first simulation step after it.
func (k *keyboard) pressed(key string) bool {
	return k.fresh && k.down(key)
}
