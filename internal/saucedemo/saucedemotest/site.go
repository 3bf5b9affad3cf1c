// Package saucedemotest provides an in-memory SauceDemo that satisfies
// screenplay.Driver, for tests that should not need a browser.
package saucedemotest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/xkilldash9x/screenplay-cli/internal/screenplay"
)

const (
	pageBlank     = "blank"
	pageLogin     = "login"
	pageInventory = "inventory"
)

// Error messages shown by the login form.
const (
	LockedOutMessage = "Epic sadface: Sorry, this user has been locked out."
	MismatchMessage  = "Epic sadface: Username and password do not match any user in this service"
)

// Site models the login form and the inventory it leads to. Any URL opens the
// login form; standard_user/secret_sauce reaches the inventory.
type Site struct {
	mu        sync.Mutex
	page      string
	username  string
	password  string
	errorText string
	products  []bool
	visited   []string
	shots     int
	closed    bool
}

var _ screenplay.Driver = (*Site)(nil)

// NewSite returns a site with six visible products and no page loaded.
func NewSite() *Site {
	return &Site{page: pageBlank, products: []bool{true, true, true, true, true, true}}
}

// SetProducts replaces the product list; each entry is that product's
// visibility.
func (s *Site) SetProducts(visible ...bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = visible
}

// Visited returns every URL navigated to, in order.
func (s *Site) Visited() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.visited...)
}

// Screenshots returns how many captures were taken.
func (s *Site) Screenshots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shots
}

// Closed reports whether Close was called.
func (s *Site) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Site) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("site is closed")
	}
	s.visited = append(s.visited, url)
	s.page, s.username, s.password, s.errorText = pageLogin, "", "", ""
	return nil
}

func (s *Site) Locate(ctx context.Context, sel screenplay.Selector) (screenplay.Element, error) {
	els, err := s.LocateAll(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%s: %w", sel, screenplay.ErrElementNotFound)
	}
	return els[0], nil
}

func (s *Site) LocateAll(ctx context.Context, sel screenplay.Selector) ([]screenplay.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.page {
	case pageLogin:
		switch sel.String() {
		case "id=user-name", "xpath=//input[@id='user-name']":
			return []screenplay.Element{&field{site: s, value: &s.username}}, nil
		case "id=password", "xpath=//input[@id='password']":
			return []screenplay.Element{&field{site: s, value: &s.password}}, nil
		case "id=login-button", "xpath=//input[@id='login-button']":
			return []screenplay.Element{&button{site: s}}, nil
		case "css=[data-test='error'], .error-message-container":
			if s.errorText != "" {
				return []screenplay.Element{&static{visible: true, text: s.errorText}}, nil
			}
		}
	case pageInventory:
		switch sel.String() {
		case "id=inventory_container":
			return []screenplay.Element{&static{visible: true}}, nil
		case "css=.inventory_item":
			els := make([]screenplay.Element, 0, len(s.products))
			for i, visible := range s.products {
				els = append(els, &static{visible: visible, text: fmt.Sprintf("product %d", i+1)})
			}
			return els, nil
		case "css=[data-test='title']":
			return []screenplay.Element{&static{visible: true, text: "Products"}}, nil
		}
	}
	return []screenplay.Element{}, nil
}

// Screenshot returns a tiny placeholder image.
func (s *Site) Screenshot(ctx context.Context, _ int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shots++
	return []byte("\x89PNG"), nil
}

// Close marks the site as closed. It is safe to call more than once.
func (s *Site) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Site) submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.username == "locked_out_user":
		s.errorText = LockedOutMessage
	case s.username == "standard_user" && s.password == "secret_sauce":
		s.page = pageInventory
	default:
		s.errorText = MismatchMessage
	}
	return nil
}

type field struct {
	site  *Site
	value *string
}

func (f *field) Visible(context.Context) (bool, error) { return true, nil }

func (f *field) Text(context.Context) (string, error) {
	f.site.mu.Lock()
	defer f.site.mu.Unlock()
	return *f.value, nil
}

func (f *field) SetValue(_ context.Context, text string) error {
	f.site.mu.Lock()
	defer f.site.mu.Unlock()
	*f.value = text
	return nil
}

func (f *field) Click(context.Context) error { return nil }

type button struct{ site *Site }

func (b *button) Visible(context.Context) (bool, error)  { return true, nil }
func (b *button) Text(context.Context) (string, error)   { return "Login", nil }
func (b *button) SetValue(context.Context, string) error { return errors.New("not an input") }
func (b *button) Click(context.Context) error            { return b.site.submit() }

type static struct {
	visible bool
	text    string
}

func (e *static) Visible(context.Context) (bool, error)  { return e.visible, nil }
func (e *static) Text(context.Context) (string, error)   { return e.text, nil }
func (e *static) SetValue(context.Context, string) error { return errors.New("read only") }
func (e *static) Click(context.Context) error            { return nil }
