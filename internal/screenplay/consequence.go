// internal/screenplay/consequence.go
package screenplay

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Expectation decides whether an answer is acceptable.
type Expectation[T any] interface {
	Matches(actual T) bool
	String() string
}

// differ is implemented by expectations that can explain a mismatch.
type differ[T any] interface {
	Diff(actual T) string
}

// Consequence is an expectation bound to a question, ready to be checked by
// Actor.Should.
type Consequence interface {
	EvaluateFor(ctx context.Context, actor *Actor) error
}

type consequence[T any] struct {
	question    Question[T]
	expectation Expectation[T]
}

// SeeThat binds q to e.
func SeeThat[T any](q Question[T], e Expectation[T]) Consequence {
	return consequence[T]{question: q, expectation: e}
}

func (c consequence[T]) EvaluateFor(ctx context.Context, actor *Actor) error {
	actual := AsksFor(ctx, actor, c.question)
	if c.expectation.Matches(actual) {
		return nil
	}
	ae := &AssertionError{
		Actor:    actor.Name(),
		Subject:  actor.describe(c.question),
		Expected: c.expectation.String(),
		Actual:   actual,
	}
	if d, ok := any(c.expectation).(differ[T]); ok {
		ae.Diff = d.Diff(actual)
	}
	return ae
}

func (c consequence[T]) String() string {
	return fmt.Sprintf("see that %v is %s", c.question, c.expectation)
}

// Should is shorthand for actor.Should(ctx, SeeThat(q, e)).
func Should[T any](ctx context.Context, actor *Actor, q Question[T], e Expectation[T]) error {
	return actor.Should(ctx, SeeThat(q, e))
}

type equalTo[T any] struct{ want T }

// Is expects an answer equal to want, compared with go-cmp.
func Is[T any](want T) Expectation[T] { return equalTo[T]{want: want} }

func (e equalTo[T]) Matches(actual T) bool { return cmp.Equal(e.want, actual) }
func (e equalTo[T]) String() string        { return fmt.Sprintf("%v", e.want) }
func (e equalTo[T]) Diff(actual T) string  { return cmp.Diff(e.want, actual) }

// IsTrue expects a true answer.
func IsTrue() Expectation[bool] { return Is(true) }

// IsFalse expects a false answer.
func IsFalse() Expectation[bool] { return Is(false) }

type not[T any] struct{ inner Expectation[T] }

// Not inverts e.
func Not[T any](e Expectation[T]) Expectation[T] { return not[T]{inner: e} }

func (n not[T]) Matches(actual T) bool { return !n.inner.Matches(actual) }
func (n not[T]) String() string        { return "not " + n.inner.String() }

type containsText struct{ fragment string }

// ContainsText expects a string answer containing fragment.
func ContainsText(fragment string) Expectation[string] { return containsText{fragment: fragment} }

func (c containsText) Matches(actual string) bool { return strings.Contains(actual, c.fragment) }
func (c containsText) String() string             { return fmt.Sprintf("text containing %q", c.fragment) }
