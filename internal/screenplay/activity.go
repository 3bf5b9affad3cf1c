// internal/screenplay/activity.go
package screenplay

import (
	"context"
	"fmt"
)

// Activity is anything an actor can perform: an atomic Interaction or a
// composite Task.
type Activity interface {
	PerformAs(ctx context.Context, actor *Actor) error
}

// Task is a named, immutable, ordered sequence of activities. The actor walks
// a task depth first, so nested tasks flatten into a single execution trace.
type Task struct {
	name       string
	activities []Activity
}

// NewTask captures activities in order. The name may contain {0}, which is
// replaced with the actor's name in reports.
func NewTask(name string, activities ...Activity) Task {
	return Task{name: name, activities: append([]Activity(nil), activities...)}
}

// PerformAs runs the task's activities as actor.
func (t Task) PerformAs(ctx context.Context, actor *Actor) error {
	return actor.AttemptsTo(ctx, t.activities...)
}

// Activities returns a copy of the captured sequence.
func (t Task) Activities() []Activity {
	return append([]Activity(nil), t.activities...)
}

func (t Task) String() string { return t.name }

// Interaction is a single state-changing step. It runs exactly once per
// invocation and is never retried.
type Interaction struct {
	description string
	perform     func(ctx context.Context, actor *Actor) error
}

// NewInteraction builds an interaction from a description and the function
// that performs it.
func NewInteraction(description string, perform func(ctx context.Context, actor *Actor) error) Interaction {
	return Interaction{description: description, perform: perform}
}

func (i Interaction) PerformAs(ctx context.Context, actor *Actor) error {
	if i.perform == nil {
		return fmt.Errorf("interaction %q has nothing to perform", i.description)
	}
	return i.perform(ctx, actor)
}

func (i Interaction) String() string { return i.description }

// EnterValue is the first half of Enter(value).Into(target).
type EnterValue struct {
	value  string
	masked bool
}

// Enter starts an interaction that types value into a target, replacing
// whatever the target held before.
func Enter(value string) EnterValue {
	return EnterValue{value: value}
}

// Masked hides the value in reports and logs.
func (e EnterValue) Masked() EnterValue {
	e.masked = true
	return e
}

// Into completes the interaction.
func (e EnterValue) Into(target Target) Interaction {
	shown := fmt.Sprintf("%q", e.value)
	if e.masked {
		shown = "********"
	}
	return NewInteraction(fmt.Sprintf("enter %s into %s", shown, target), func(ctx context.Context, actor *Actor) error {
		el, err := target.ResolveOne(ctx, actor)
		if err != nil {
			return err
		}
		return el.SetValue(ctx, e.value)
	})
}

// Click clicks on target.
func Click(target Target) Interaction {
	return NewInteraction(fmt.Sprintf("click on %s", target), func(ctx context.Context, actor *Actor) error {
		el, err := target.ResolveOne(ctx, actor)
		if err != nil {
			return err
		}
		return el.Click(ctx)
	})
}

// Open navigates the actor's browser to url.
func Open(url string) Interaction {
	return NewInteraction(fmt.Sprintf("open %s", url), func(ctx context.Context, actor *Actor) error {
		driver, err := BrowserOf(actor)
		if err != nil {
			return err
		}
		return driver.Navigate(ctx, url)
	})
}
