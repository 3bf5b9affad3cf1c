// internal/browser/session.go
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/screenplay-cli/internal/config"
	"github.com/xkilldash9x/screenplay-cli/internal/screenplay"
)

// Session is one browser process driven over CDP. It is the driver handle an
// actor receives through the BrowseTheWeb ability.
type Session struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
	cfg    config.BrowserConfig

	onClose func()

	mu       sync.Mutex
	isClosed bool
}

var _ screenplay.Driver = (*Session)(nil)

// ID returns the unique identifier of the session.
func (s *Session) ID() string { return s.id }

// Navigate loads url and waits for the document to be ready.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.logger.Debug("Navigating.", zap.String("url", url))
	err := s.runWithTimeout(ctx, s.cfg.NavigationTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// Locate returns the first element matched by sel.
func (s *Session) Locate(ctx context.Context, sel screenplay.Selector) (screenplay.Element, error) {
	els, err := s.LocateAll(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%s: %w", sel, screenplay.ErrElementNotFound)
	}
	return els[0], nil
}

// LocateAll returns every element matched by sel. The lookup polls for up to
// the configured implicit wait before settling on an empty result.
func (s *Session) LocateAll(ctx context.Context, sel screenplay.Selector) ([]screenplay.Element, error) {
	nodes, err := s.queryNodes(ctx, sel)
	if err != nil {
		return nil, err
	}
	els := make([]screenplay.Element, 0, len(nodes))
	for _, node := range nodes {
		els = append(els, &Element{session: s, node: node, selector: sel})
	}
	return els, nil
}

func (s *Session) queryNodes(ctx context.Context, sel screenplay.Selector) ([]*cdp.Node, error) {
	query, opts := queryFor(sel)

	runCtx, cancel := CombineContext(s.ctx, ctx)
	defer cancel()

	wait := s.cfg.ImplicitWait
	if wait <= 0 {
		// A single lookup that accepts zero matches.
		opts = append(opts, chromedp.AtLeast(0))
		wait = s.cfg.ActionTimeout
	}
	waitCtx, waitCancel := context.WithTimeout(runCtx, wait)
	defer waitCancel()

	var nodes []*cdp.Node
	err := chromedp.Run(waitCtx, chromedp.Nodes(query, &nodes, opts...))
	switch {
	case err == nil:
		return nodes, nil
	case errors.Is(err, context.DeadlineExceeded) && runCtx.Err() == nil:
		// The implicit wait ran out without a match.
		return []*cdp.Node{}, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		return nil, fmt.Errorf("querying %s: %w", sel, err)
	}
}

// queryFor translates a selector into a chromedp query.
func queryFor(sel screenplay.Selector) (string, []chromedp.QueryOption) {
	switch sel.Kind {
	case screenplay.KindID:
		return fmt.Sprintf("[id=%q]", sel.Value), []chromedp.QueryOption{chromedp.ByQueryAll}
	case screenplay.KindXPath:
		return sel.Value, []chromedp.QueryOption{chromedp.BySearch}
	default:
		return sel.Value, []chromedp.QueryOption{chromedp.ByQueryAll}
	}
}

// Screenshot captures the full page. A quality of 100 yields PNG, anything
// lower a JPEG of that quality.
func (s *Session) Screenshot(ctx context.Context, quality int) ([]byte, error) {
	var buf []byte
	if err := s.runWithTimeout(ctx, s.cfg.ActionTimeout, chromedp.FullScreenshot(&buf, quality)); err != nil {
		return nil, fmt.Errorf("capturing screenshot: %w", err)
	}
	return buf, nil
}

// Close shuts the browser down. It waits for the process to exit until ctx
// is done and is safe to call more than once.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.isClosed {
		s.mu.Unlock()
		return nil
	}
	s.isClosed = true
	s.mu.Unlock()

	s.logger.Debug("Closing browser session.")

	done := make(chan error, 1)
	go func() {
		done <- chromedp.Cancel(s.ctx)
	}()

	var err error
	select {
	case err = <-done:
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	case <-ctx.Done():
		s.logger.Warn("Timed out waiting for the browser to exit.", zap.Error(ctx.Err()))
		err = ctx.Err()
	}

	s.cancel()
	if s.onClose != nil {
		s.onClose()
	}
	return err
}

// runWithTimeout runs actions bound to the session lifetime, the caller's ctx
// and, when positive, timeout.
func (s *Session) runWithTimeout(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := CombineContext(s.ctx, ctx)
	defer cancel()

	if timeout > 0 {
		var timeoutCancel context.CancelFunc
		runCtx, timeoutCancel = context.WithTimeout(runCtx, timeout)
		defer timeoutCancel()
	}

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
