// internal/browser/element.go
package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/xkilldash9x/screenplay-cli/internal/screenplay"
)

const (
	// jsIsVisible mirrors how chromedp decides visibility, plus the CSS
	// visibility property.
	jsIsVisible = `function() {
		if (!this.isConnected) { return false; }
		const style = window.getComputedStyle(this);
		if (style.visibility === 'hidden' || style.display === 'none') { return false; }
		return Boolean(this.offsetWidth || this.offsetHeight || this.getClientRects().length);
	}`

	jsInnerText = `function() { return this.innerText || this.textContent || ''; }`
)

// Element is a DOM node found by a Session.
type Element struct {
	session  *Session
	node     *cdp.Node
	selector screenplay.Selector
}

var _ screenplay.Element = (*Element)(nil)

func (e *Element) ids() []cdp.NodeID { return []cdp.NodeID{e.node.NodeID} }

// Visible reports whether the node is rendered and not hidden by CSS.
func (e *Element) Visible(ctx context.Context) (bool, error) {
	var visible bool
	err := e.session.runWithTimeout(ctx, e.session.cfg.ActionTimeout, chromedp.ActionFunc(func(ctx context.Context) error {
		return callOnNode(ctx, e.node, jsIsVisible, &visible)
	}))
	if err != nil {
		return false, fmt.Errorf("checking visibility of %s: %w", e.selector, err)
	}
	return visible, nil
}

// Text returns the rendered text of the node.
func (e *Element) Text(ctx context.Context) (string, error) {
	var text string
	err := e.session.runWithTimeout(ctx, e.session.cfg.ActionTimeout, chromedp.ActionFunc(func(ctx context.Context) error {
		return callOnNode(ctx, e.node, jsInnerText, &text)
	}))
	if err != nil {
		return "", fmt.Errorf("reading text of %s: %w", e.selector, err)
	}
	return text, nil
}

// SetValue clears the field and types text into it.
func (e *Element) SetValue(ctx context.Context, text string) error {
	err := e.session.runWithTimeout(ctx, e.session.cfg.ActionTimeout, chromedp.Tasks{
		chromedp.ScrollIntoView(e.ids(), chromedp.ByNodeID),
		chromedp.WaitVisible(e.ids(), chromedp.ByNodeID),
		chromedp.Clear(e.ids(), chromedp.ByNodeID),
		chromedp.SendKeys(e.ids(), text, chromedp.ByNodeID),
	})
	if err != nil {
		return fmt.Errorf("typing into %s: %w", e.selector, err)
	}
	return nil
}

// Click scrolls the node into view and clicks its center.
func (e *Element) Click(ctx context.Context) error {
	err := e.session.runWithTimeout(ctx, e.session.cfg.ActionTimeout, chromedp.Tasks{
		chromedp.ScrollIntoView(e.ids(), chromedp.ByNodeID),
		chromedp.WaitVisible(e.ids(), chromedp.ByNodeID),
		chromedp.Click(e.ids(), chromedp.ByNodeID),
	})
	if err != nil {
		return fmt.Errorf("clicking %s: %w", e.selector, err)
	}
	return nil
}

// callOnNode calls function with the node bound to this and decodes the
// returned value into res.
func callOnNode(ctx context.Context, node *cdp.Node, function string, res interface{}) error {
	obj, err := dom.ResolveNode().WithNodeID(node.NodeID).Do(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = runtime.ReleaseObject(obj.ObjectID).Do(ctx) }()

	result, exception, err := runtime.CallFunctionOn(function).
		WithObjectID(obj.ObjectID).
		WithReturnByValue(true).
		Do(ctx)
	if err != nil {
		return err
	}
	if exception != nil {
		return exception
	}
	return json.Unmarshal([]byte(result.Value), res)
}
