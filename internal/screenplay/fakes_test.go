// internal/screenplay/fakes_test.go
package screenplay_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/xkilldash9x/screenplay-cli/internal/screenplay"
)

// fakeElement is an in-memory element used across the package tests.
type fakeElement struct {
	mu       sync.Mutex
	visible  bool
	text     string
	value    string
	clicks   int
	err      error
	onClick  func()
	setCalls []string
}

func (e *fakeElement) Visible(context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible, e.err
}

func (e *fakeElement) Text(context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text, e.err
}

func (e *fakeElement) SetValue(_ context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.value = text
	e.setCalls = append(e.setCalls, text)
	return nil
}

func (e *fakeElement) Click(context.Context) error {
	e.mu.Lock()
	if e.err != nil {
		e.mu.Unlock()
		return e.err
	}
	e.clicks++
	onClick := e.onClick
	e.mu.Unlock()
	if onClick != nil {
		onClick()
	}
	return nil
}

// fakeDriver serves elements keyed by selector string.
type fakeDriver struct {
	mu        sync.Mutex
	elements  map[string][]screenplay.Element
	visited   []string
	locates   []string
	locateErr error
	navErr    error
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{elements: make(map[string][]screenplay.Element)}
}

func (d *fakeDriver) put(sel screenplay.Selector, els ...screenplay.Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[sel.String()] = els
}

func (d *fakeDriver) Navigate(_ context.Context, url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.navErr != nil {
		return d.navErr
	}
	d.visited = append(d.visited, url)
	return nil
}

func (d *fakeDriver) Locate(ctx context.Context, sel screenplay.Selector) (screenplay.Element, error) {
	els, err := d.LocateAll(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("no element for %s: %w", sel, screenplay.ErrElementNotFound)
	}
	return els[0], nil
}

func (d *fakeDriver) LocateAll(_ context.Context, sel screenplay.Selector) ([]screenplay.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.locates = append(d.locates, sel.String())
	if d.locateErr != nil {
		return nil, d.locateErr
	}
	return append([]screenplay.Element{}, d.elements[sel.String()]...), nil
}

func (d *fakeDriver) lookups() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.locates...)
}

// record returns an interaction that appends name to log when performed.
func record(log *[]string, name string) screenplay.Interaction {
	return screenplay.NewInteraction(name, func(context.Context, *screenplay.Actor) error {
		*log = append(*log, name)
		return nil
	})
}

// failing returns an interaction that appends name to log and fails with err.
func failing(log *[]string, name string, err error) screenplay.Interaction {
	return screenplay.NewInteraction(name, func(context.Context, *screenplay.Actor) error {
		*log = append(*log, name)
		return err
	})
}
