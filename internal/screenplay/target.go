// internal/screenplay/target.go
package screenplay

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Target is a named, lazily resolved locator for a UI concept. Constructing a
// Target never touches the driver, so targets are usually package-level values
// shared across scenarios.
type Target struct {
	name      string
	selectors []Selector
}

// The starts a target definition: The("login button").LocatedBy(ByID("login-button")).
func The(name string) Target {
	return Target{name: name}
}

// LocatedBy returns a copy of t with the given candidate selectors. Candidates
// are tried in order during resolution.
func (t Target) LocatedBy(selectors ...Selector) Target {
	t.selectors = append([]Selector(nil), selectors...)
	return t
}

// Of substitutes {0}, {1}, ... placeholders in every selector value (and the
// name) with args, returning a new target.
func (t Target) Of(args ...string) Target {
	replace := func(s string) string {
		for i, arg := range args {
			s = strings.ReplaceAll(s, "{"+strconv.Itoa(i)+"}", arg)
		}
		return s
	}
	out := Target{name: replace(t.name), selectors: make([]Selector, len(t.selectors))}
	for i, sel := range t.selectors {
		out.selectors[i] = Selector{Kind: sel.Kind, Value: replace(sel.Value)}
	}
	return out
}

// Name returns the human readable name used in reports.
func (t Target) Name() string { return t.name }

// Selectors returns a copy of the candidate selectors.
func (t Target) Selectors() []Selector {
	return append([]Selector(nil), t.selectors...)
}

func (t Target) String() string { return "the " + t.name }

// ResolveOne returns the first element matched by the first candidate selector
// that matches anything. When no candidate matches, the error wraps
// ErrElementNotFound.
func (t Target) ResolveOne(ctx context.Context, actor *Actor) (Element, error) {
	driver, err := BrowserOf(actor)
	if err != nil {
		return nil, err
	}
	if len(t.selectors) == 0 {
		return nil, fmt.Errorf("%s has no selectors: %w", t, ErrElementNotFound)
	}

	var lastErr error
	for _, sel := range t.selectors {
		el, err := driver.Locate(ctx, sel)
		if err == nil && el != nil {
			return el, nil
		}
		if err == nil {
			err = ErrElementNotFound
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("resolving %s: %w", t, lastErr)
}

// ResolveAll returns every element matched by the first candidate selector that
// matches anything. No match at all is an empty slice, not an error. Like
// ResolveOne, a driver error on one candidate moves on to the next; it is
// returned only when no later candidate matches.
func (t Target) ResolveAll(ctx context.Context, actor *Actor) ([]Element, error) {
	driver, err := BrowserOf(actor)
	if err != nil {
		return nil, err
	}
	var firstErr error
	for _, sel := range t.selectors {
		els, err := driver.LocateAll(ctx, sel)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("resolving all of %s by %s: %w", t, sel, err)
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if len(els) > 0 {
			return els, nil
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return []Element{}, nil
}
