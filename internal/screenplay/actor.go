// internal/screenplay/actor.go
package screenplay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the lifecycle position of an Actor within its scenario.
type State int

const (
	StateUninitialized State = iota
	StateAbilitiesAttached
	StateExecuting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAbilitiesAttached:
		return "abilities-attached"
	case StateExecuting:
		return "executing"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type depthKey struct{}

// Actor is the execution context of a scenario. Activities are performed and
// questions are answered through it, using the abilities it was granted.
//
// An Actor is meant to be driven by a single goroutine. The mutex only guards
// the ability map and the state so that listeners and loggers can inspect the
// actor safely.
type Actor struct {
	name      string
	logger    *zap.Logger
	listeners []Listener

	mu        sync.RWMutex
	abilities map[AbilityKind]Ability
	state     State
}

// Option configures an Actor.
type Option func(*Actor)

// WithLogger sets the logger used for activity and question tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Actor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithListener attaches listeners that observe every event of the actor.
func WithListener(listeners ...Listener) Option {
	return func(a *Actor) {
		a.listeners = append(a.listeners, listeners...)
	}
}

// Named creates an actor with no abilities.
func Named(name string, opts ...Option) *Actor {
	a := &Actor{
		name:      name,
		logger:    zap.NewNop(),
		abilities: make(map[AbilityKind]Ability),
		state:     StateUninitialized,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(zap.String("actor", name))
	return a
}

// Name returns the actor's name as used in reports.
func (a *Actor) Name() string { return a.name }

// Logger returns the actor's logger.
func (a *Actor) Logger() *zap.Logger { return a.logger }

// State returns the current lifecycle state.
func (a *Actor) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Can grants abilities to the actor. A second ability of a kind already held
// replaces the first one. Abilities granted to a dismissed actor are ignored.
func (a *Actor) Can(abilities ...Ability) *Actor {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == StateDone {
		a.logger.Warn("Ignoring abilities granted to a dismissed actor.")
		return a
	}
	for _, ability := range abilities {
		if ability == nil {
			continue
		}
		kind := ability.Kind()
		if _, exists := a.abilities[kind]; exists {
			a.logger.Warn("Replacing an ability the actor already holds.", zap.String("kind", string(kind)))
		}
		a.abilities[kind] = ability
	}
	if a.state == StateUninitialized && len(a.abilities) > 0 {
		a.state = StateAbilitiesAttached
	}
	return a
}

// WhoCan is an alias of Can that reads better at construction time:
// screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(driver)).
func (a *Actor) WhoCan(abilities ...Ability) *Actor { return a.Can(abilities...) }

func (a *Actor) ability(kind AbilityKind) (Ability, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ability, ok := a.abilities[kind]
	return ability, ok
}

// Dismiss ends the actor's scenario. The actor drops every ability it holds so
// that it can no longer reach the driver; releasing the driver itself is the
// job of whoever created it.
func (a *Actor) Dismiss() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.abilities = make(map[AbilityKind]Ability)
	a.state = StateDone
}

// AttemptsTo performs activities strictly in order. Tasks are walked depth
// first. The first failing activity, at any depth, aborts everything after it
// and its error is returned; nothing is retried.
func (a *Actor) AttemptsTo(ctx context.Context, activities ...Activity) error {
	a.mu.Lock()
	if a.state == StateDone {
		a.mu.Unlock()
		return ErrActorDismissed
	}
	previous := a.state
	a.state = StateExecuting
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		if a.state == StateExecuting {
			a.state = previous
		}
		a.mu.Unlock()
	}()

	depth, _ := ctx.Value(depthKey{}).(int)
	return a.performAll(ctx, activities, depth)
}

func (a *Actor) performAll(ctx context.Context, activities []Activity, depth int) error {
	for _, activity := range activities {
		if activity == nil {
			continue
		}
		if task, ok := activity.(*Task); ok && task == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return &ActivityExecutionError{Actor: a.name, Activity: a.describe(activity), Err: err}
		}
		if err := a.perform(ctx, activity, depth); err != nil {
			return err
		}
	}
	return nil
}

func (a *Actor) perform(ctx context.Context, activity Activity, depth int) error {
	description := a.describe(activity)
	var children []Activity
	composite := false
	switch v := activity.(type) {
	case Task:
		children, composite = v.activities, true
	case *Task:
		children, composite = v.activities, true
	}

	a.emit(ctx, Event{Kind: ActivityStarted, Description: description, Depth: depth, Composite: composite})
	a.logger.Debug("Performing activity.", zap.String("activity", description), zap.Int("depth", depth))

	var err error
	if composite {
		err = a.performAll(ctx, children, depth+1)
	} else {
		err = a.attribute(description, activity.PerformAs(context.WithValue(ctx, depthKey{}, depth+1), a))
	}

	if err != nil {
		a.logger.Debug("Activity failed.", zap.String("activity", description), zap.Error(err))
	}
	a.emit(ctx, Event{Kind: ActivityFinished, Description: description, Depth: depth, Composite: composite, Err: err})
	return err
}

// attribute turns the raw failure of an atomic activity into an
// ActivityExecutionError. Errors that already carry attribution, and missing
// abilities, pass through untouched.
func (a *Actor) attribute(description string, err error) error {
	if err == nil {
		return nil
	}
	var missing *MissingAbilityError
	if errors.As(err, &missing) {
		return err
	}
	var execErr *ActivityExecutionError
	if errors.As(err, &execErr) {
		return err
	}
	return &ActivityExecutionError{Actor: a.name, Activity: description, Err: err}
}

// Should evaluates every consequence and returns the joined assertion
// failures, or nil when all of them hold.
func (a *Actor) Should(ctx context.Context, consequences ...Consequence) error {
	if a.State() == StateDone {
		return ErrActorDismissed
	}
	var errs []error
	for _, c := range consequences {
		if c == nil {
			continue
		}
		err := c.EvaluateFor(ctx, a)
		a.emit(ctx, Event{Kind: ConsequenceEvaluated, Description: a.describe(c), Err: err})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *Actor) emit(ctx context.Context, ev Event) {
	if len(a.listeners) == 0 {
		return
	}
	ev.Actor = a.name
	ev.At = time.Now()
	for _, l := range a.listeners {
		l.OnEvent(ctx, ev)
	}
}

func (a *Actor) describe(v any) string {
	var s string
	if stringer, ok := v.(fmt.Stringer); ok {
		s = stringer.String()
	} else {
		s = fmt.Sprintf("%T", v)
	}
	return strings.ReplaceAll(s, "{0}", a.name)
}
