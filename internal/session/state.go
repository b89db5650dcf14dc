package session

import "sync"

// Phase is the lifecycle phase of a session operation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSucceeded
	PhaseFailed
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is one observable step of a session operation. Err is set only in
// PhaseFailed.
type State struct {
	Operation string
	Phase     Phase
	Err       error
}

// subscriberBuffer bounds how many undelivered states a subscriber may
// accumulate before newer states are dropped.
const subscriberBuffer = 16

// tracker broadcasts operation states to subscribers. For any operation,
// subscribers that keep draining their channel observe PhaseLoading before
// the terminal PhaseSucceeded or PhaseFailed.
type tracker struct {
	mu   sync.Mutex
	subs map[chan State]struct{}
}

func newTracker() *tracker {
	return &tracker{
		subs: make(map[chan State]struct{}),
	}
}

// subscribe registers a new subscriber channel. The returned cancel function
// unregisters it and closes the channel.
func (t *tracker) subscribe() (<-chan State, func()) {
	ch := make(chan State, subscriberBuffer)

	t.mu.Lock()
	t.subs[ch] = struct{}{}
	t.mu.Unlock()

	cancel := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if _, ok := t.subs[ch]; ok {
			delete(t.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// publish delivers state to every subscriber. Channels are per-subscriber
// FIFO, so delivered states keep publish order; a subscriber that stops
// draining loses newer states rather than blocking operations.
func (t *tracker) publish(state State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for ch := range t.subs {
		select {
		case ch <- state:
		default:
		}
	}
}

// run executes op, surrounding it with Loading and a terminal state.
func (t *tracker) run(operation string, op func() error) error {
	t.publish(State{Operation: operation, Phase: PhaseLoading})

	if err := op(); err != nil {
		t.publish(State{Operation: operation, Phase: PhaseFailed, Err: err})
		return err
	}

	t.publish(State{Operation: operation, Phase: PhaseSucceeded})
	return nil
}
