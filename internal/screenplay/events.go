// internal/screenplay/events.go
package screenplay

import (
	"context"
	"sync"
	"time"
)

// EventKind classifies what an actor just did.
type EventKind int

const (
	ActivityStarted EventKind = iota
	ActivityFinished
	QuestionAnswered
	ConsequenceEvaluated
)

func (k EventKind) String() string {
	switch k {
	case ActivityStarted:
		return "activity_started"
	case ActivityFinished:
		return "activity_finished"
	case QuestionAnswered:
		return "question_answered"
	case ConsequenceEvaluated:
		return "consequence_evaluated"
	default:
		return "unknown"
	}
}

// Event is emitted to every Listener attached to an actor.
type Event struct {
	Kind        EventKind
	Actor       string
	Description string
	// Depth is the nesting level of the activity; top level activities are 0.
	Depth int
	// Composite is true for tasks, false for interactions.
	Composite bool
	Answer    any
	Err       error
	At        time.Time
}

// Listener observes an actor. Listeners run synchronously on the actor's
// goroutine and must not call back into the actor.
type Listener interface {
	OnEvent(ctx context.Context, ev Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ctx context.Context, ev Event)

func (f ListenerFunc) OnEvent(ctx context.Context, ev Event) { f(ctx, ev) }

// Recorder is a Listener that keeps every event it sees, in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) OnEvent(_ context.Context, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a snapshot of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Trace returns the descriptions of the interactions that were started, in
// execution order. Tasks are flattened away.
func (r *Recorder) Trace() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var trace []string
	for _, ev := range r.events {
		if ev.Kind == ActivityStarted && !ev.Composite {
			trace = append(trace, ev.Description)
		}
	}
	return trace
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
