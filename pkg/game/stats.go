package game

// TransitionKind classifies an overlap change between two frames.
type TransitionKind int

const (
	Enter TransitionKind = iota
	Stay
	Exit
)

func (k TransitionKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Stay:
		return "stay"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// Stats are diagnostic counters. They are observable only and never
// influence engine behavior.
type Stats struct {
	Ticks             uint64
	SimulatedFrames   uint64
	ThrottledTicks    uint64
	IdleTicks         uint64 // ticks with no current scene
	ReentrantTicks    uint64
	SkippedPairings   uint64 // collider pairs skipped for a box with no area
	NonFiniteFPS      uint64
	DeferredMutations uint64

	Collisions [3]uint64 // indexed by TransitionKind
	Triggers   [3]uint64
}

func (s *Stats) transition(trigger bool, kind TransitionKind) {
	if s == nil {
		return
	}
	if trigger {
		s.Triggers[kind]++
	} else {
		s.Collisions[kind]++
	}
}

func (s *Stats) skippedPairing() {
	if s != nil {
		s.SkippedPairings++
	}
}

func (s *Stats) deferred() {
	if s != nil {
		s.DeferredMutations++
	}
}
