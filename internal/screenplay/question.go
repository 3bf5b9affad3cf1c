// internal/screenplay/question.go
package screenplay

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Question reads application state through an actor. Answering a question
// never changes the application and never fails: a question that cannot be
// answered returns its fallback value.
type Question[T any] interface {
	AnsweredBy(ctx context.Context, actor *Actor) T
}

type question[T any] struct {
	subject  string
	fallback T
	probe    func(ctx context.Context, actor *Actor) (T, error)
}

// About builds a question about subject. Any error returned by probe, and any
// panic raised while probing, is absorbed and turned into fallback.
func About[T any](subject string, fallback T, probe func(ctx context.Context, actor *Actor) (T, error)) Question[T] {
	return question[T]{subject: subject, fallback: fallback, probe: probe}
}

func (q question[T]) AnsweredBy(ctx context.Context, actor *Actor) (answer T) {
	defer func() {
		if r := recover(); r != nil {
			actor.Logger().Debug("Question panicked; answering with fallback.",
				zap.String("question", q.subject), zap.Any("panic", r))
			answer = q.fallback
		}
	}()

	value, err := q.probe(ctx, actor)
	if err != nil {
		actor.Logger().Debug("Question could not be answered; answering with fallback.",
			zap.String("question", q.subject), zap.Error(err))
		return q.fallback
	}
	return value
}

func (q question[T]) String() string { return q.subject }

// AsksFor has actor answer q and returns the answer.
func AsksFor[T any](ctx context.Context, actor *Actor, q Question[T]) T {
	answer := q.AnsweredBy(ctx, actor)
	actor.emit(ctx, Event{Kind: QuestionAnswered, Description: actor.describe(q), Answer: answer})
	return answer
}

// VisibilityOf is true when the first element resolved for target is visible.
func VisibilityOf(target Target) Question[bool] {
	return About(fmt.Sprintf("whether %s is visible", target), false, func(ctx context.Context, actor *Actor) (bool, error) {
		el, err := target.ResolveOne(ctx, actor)
		if err != nil {
			return false, err
		}
		return el.Visible(ctx)
	})
}

// VisibilityOfAll resolves every element of target and is true only when at
// least one was found and the first of them is visible. Later elements are
// not inspected: a hidden first element makes the answer false even if a
// later one is visible.
func VisibilityOfAll(target Target) Question[bool] {
	return About(fmt.Sprintf("whether all of %s are visible", target), false, func(ctx context.Context, actor *Actor) (bool, error) {
		els, err := target.ResolveAll(ctx, actor)
		if err != nil {
			return false, err
		}
		if len(els) == 0 {
			return false, nil
		}
		return els[0].Visible(ctx)
	})
}

// PresenceOf is true when target resolves to at least one element.
func PresenceOf(target Target) Question[bool] {
	return About(fmt.Sprintf("whether %s is present", target), false, func(ctx context.Context, actor *Actor) (bool, error) {
		els, err := target.ResolveAll(ctx, actor)
		if err != nil {
			return false, err
		}
		return len(els) > 0, nil
	})
}

// CountOf is the number of elements target resolves to.
func CountOf(target Target) Question[int] {
	return About(fmt.Sprintf("the number of %s", target), 0, func(ctx context.Context, actor *Actor) (int, error) {
		els, err := target.ResolveAll(ctx, actor)
		if err != nil {
			return 0, err
		}
		return len(els), nil
	})
}

// TextOf is the text of the first element target resolves to.
func TextOf(target Target) Question[string] {
	return About(fmt.Sprintf("the text of %s", target), "", func(ctx context.Context, actor *Actor) (string, error) {
		el, err := target.ResolveOne(ctx, actor)
		if err != nil {
			return "", err
		}
		return el.Text(ctx)
	})
}
