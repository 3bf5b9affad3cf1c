// internal/screenplay/driver.go
package screenplay

import (
	"context"
	"fmt"
)

// SelectorKind identifies the strategy a Selector uses to find elements.
type SelectorKind int

const (
	KindID SelectorKind = iota
	KindCSS
	KindXPath
)

func (k SelectorKind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindCSS:
		return "css"
	case KindXPath:
		return "xpath"
	default:
		return fmt.Sprintf("SelectorKind(%d)", int(k))
	}
}

// Selector is a single locating strategy: a kind plus the expression it evaluates.
type Selector struct {
	Kind  SelectorKind
	Value string
}

// ByID locates elements by their id attribute.
func ByID(id string) Selector { return Selector{Kind: KindID, Value: id} }

// ByCSS locates elements with a CSS selector.
func ByCSS(css string) Selector { return Selector{Kind: KindCSS, Value: css} }

// ByXPath locates elements with an XPath expression.
func ByXPath(xpath string) Selector { return Selector{Kind: KindXPath, Value: xpath} }

func (s Selector) String() string {
	return fmt.Sprintf("%s=%s", s.Kind, s.Value)
}

// Driver is the browser automation handle wrapped by the BrowseTheWeb ability.
// Implementations own their own polling and timeouts; the screenplay core never
// retries or waits on top of them.
type Driver interface {
	// Navigate loads the given URL in the driver's page.
	Navigate(ctx context.Context, url string) error
	// Locate returns the first element matching sel, or an error wrapping
	// ErrElementNotFound when nothing matched.
	Locate(ctx context.Context, sel Selector) (Element, error)
	// LocateAll returns every element matching sel. No match is an empty
	// slice and a nil error.
	LocateAll(ctx context.Context, sel Selector) ([]Element, error)
}

// Element is a driver-native element handle.
type Element interface {
	Visible(ctx context.Context) (bool, error)
	Text(ctx context.Context) (string, error)
	// SetValue replaces the element's current value with text.
	SetValue(ctx context.Context, text string) error
	Click(ctx context.Context) error
}
