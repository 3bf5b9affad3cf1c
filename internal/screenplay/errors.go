// internal/screenplay/errors.go
package screenplay

import (
	"errors"
	"fmt"
)

var (
	// ErrElementNotFound is returned by a Driver when a selector matched nothing.
	ErrElementNotFound = errors.New("element not found")

	// ErrActorDismissed is returned when a dismissed actor is asked to do anything.
	ErrActorDismissed = errors.New("actor has been dismissed")
)

// MissingAbilityError reports that an activity or question needed a capability
// the actor was never granted. It is a configuration defect and is never
// recovered by the actor.
type MissingAbilityError struct {
	Actor string
	Kind  AbilityKind
}

func (e *MissingAbilityError) Error() string {
	return fmt.Sprintf("%s does not have the ability to %s", e.Actor, e.Kind)
}

// ActivityExecutionError wraps the failure of an atomic activity. It aborts the
// remaining activities of the AttemptsTo call that raised it.
type ActivityExecutionError struct {
	Actor    string
	Activity string
	Err      error
}

func (e *ActivityExecutionError) Error() string {
	return fmt.Sprintf("%s could not %s: %v", e.Actor, e.Activity, e.Err)
}

func (e *ActivityExecutionError) Unwrap() error { return e.Err }

// AssertionError is the "soft" failure raised by Actor.Should when an answer
// does not meet its expectation.
type AssertionError struct {
	Actor    string
	Subject  string
	Expected string
	Actual   any
	// Diff is a go-cmp diff (-want +got) when one could be produced.
	Diff string
}

func (e *AssertionError) Error() string {
	msg := fmt.Sprintf("%s expected %s to be %s but was %v", e.Actor, e.Subject, e.Expected, e.Actual)
	if e.Diff != "" {
		msg += "\n" + e.Diff
	}
	return msg
}

// IsAssertionFailure reports whether err carries at least one AssertionError.
func IsAssertionFailure(err error) bool {
	var ae *AssertionError
	return errors.As(err, &ae)
}
