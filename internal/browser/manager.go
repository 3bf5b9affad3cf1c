// internal/browser/manager.go
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/xkilldash9x/screenplay-cli/internal/config"
)

// ErrManagerClosed is returned by NewSession after Shutdown.
var ErrManagerClosed = errors.New("browser manager is shut down")

const cleanupTimeout = 15 * time.Second

// Manager owns the exec allocator and hands out one isolated browser process
// per session. At most cfg.Concurrency browsers run at once.
type Manager struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	logger      *zap.Logger
	cfg         config.BrowserConfig
	processes   *semaphore.Weighted

	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool
	wg       sync.WaitGroup
}

// NewManager prepares the allocator. No browser is started until the first
// session is requested.
func NewManager(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid browser configuration: %w", err)
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, AllocatorOptions(cfg)...)

	m := &Manager{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		logger:      logger.Named("browser_manager"),
		cfg:         cfg,
		processes:   semaphore.NewWeighted(int64(cfg.Concurrency)),
		sessions:    make(map[string]*Session),
	}
	m.logger.Info("Browser manager created (browsers start on demand).",
		zap.Bool("headless", cfg.Headless), zap.Int("concurrency", cfg.Concurrency))
	return m, nil
}

// NewSession launches a fresh browser and returns its session. It blocks
// while the concurrency limit is reached, until ctx is done.
func (m *Manager) NewSession(ctx context.Context) (*Session, error) {
	if err := m.processes.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for a free browser slot: %w", err)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.processes.Release(1)
		return nil, ErrManagerClosed
	}
	m.wg.Add(1)
	m.mu.Unlock()

	id := uuid.New().String()
	sessionCtx, sessionCancel := chromedp.NewContext(m.allocCtx,
		chromedp.WithLogf(m.logger.Sugar().Debugf),
		chromedp.WithErrorf(m.logger.Sugar().Debugf),
	)

	s := &Session{
		id:     id,
		ctx:    sessionCtx,
		cancel: sessionCancel,
		logger: m.logger.Named("session").With(zap.String("session_id", id)),
		cfg:    m.cfg,
	}
	s.onClose = func() {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		m.processes.Release(1)
		m.wg.Done()
		m.logger.Debug("Session removed from manager.", zap.String("session_id", id))
	}

	// The first Run allocates the browser and must use the session context
	// itself: the process lives as long as that context.
	started := make(chan error, 1)
	go func() { started <- chromedp.Run(sessionCtx) }()

	var startErr error
	select {
	case startErr = <-started:
	case <-ctx.Done():
		sessionCancel()
		startErr = ctx.Err()
	}
	if startErr != nil {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()
		if err := s.Close(cleanupCtx); err != nil {
			s.logger.Debug("Error cleaning up a browser that failed to start.", zap.Error(err))
		}
		return nil, fmt.Errorf("starting browser: %w", startErr)
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Info("New browser session created.", zap.String("session_id", id))
	return s, nil
}

// ActiveSessions returns the number of sessions not yet closed.
func (m *Manager) ActiveSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown closes every open session, then the allocator. Sessions are
// closed concurrently; ctx bounds the whole operation.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	open := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		open = append(open, s)
	}
	m.mu.Unlock()

	m.logger.Info("Shutting down browser manager.", zap.Int("open_sessions", len(open)))

	var g errgroup.Group
	for _, s := range open {
		g.Go(func() error {
			if err := s.Close(ctx); err != nil {
				return fmt.Errorf("closing session %s: %w", s.ID(), err)
			}
			return nil
		})
	}
	err := g.Wait()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("Timeout waiting for sessions to close. Proceeding with forceful shutdown.", zap.Error(ctx.Err()))
		if err == nil {
			err = ctx.Err()
		}
	}

	m.allocCancel()
	m.logger.Info("Browser manager shutdown complete.")
	return err
}
