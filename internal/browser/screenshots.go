// internal/browser/screenshots.go
package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/xkilldash9x/screenplay-cli/internal/config"
	"github.com/xkilldash9x/screenplay-cli/internal/screenplay"
)

const screenshotTimeout = 10 * time.Second

// Screenshotter captures the current page.
type Screenshotter interface {
	Screenshot(ctx context.Context, quality int) ([]byte, error)
}

// ScreenshotListener captures the page after interactions, according to the
// configured policy, and writes one file per capture under
// <dir>/<scenario>/.
type ScreenshotListener struct {
	shooter Screenshotter
	policy  config.ScreenshotPolicy
	dir     string
	quality int
	logger  *zap.Logger

	mu    sync.Mutex
	seq   int
	files []string
}

var _ screenplay.Listener = (*ScreenshotListener)(nil)

// NewScreenshotListener returns a listener that photographs shooter's page
// for the named scenario.
func NewScreenshotListener(shooter Screenshotter, cfg config.ScreenshotConfig, scenario string, logger *zap.Logger) *ScreenshotListener {
	quality := cfg.Quality
	if quality <= 0 || quality > 100 {
		quality = 100
	}
	return &ScreenshotListener{
		shooter: shooter,
		policy:  cfg.Policy,
		dir:     filepath.Join(cfg.Dir, slug(scenario)),
		quality: quality,
		logger:  logger.Named("screenshots"),
	}
}

// OnEvent captures after each finished interaction when the policy asks for
// it. Failures are logged and never affect the scenario.
func (l *ScreenshotListener) OnEvent(ctx context.Context, ev screenplay.Event) {
	if ev.Kind != screenplay.ActivityFinished || ev.Composite {
		return
	}
	switch l.policy {
	case config.ScreenshotsForEachAction:
	case config.ScreenshotsOnFailure:
		if ev.Err == nil {
			return
		}
	default:
		return
	}

	// The step may have failed because ctx was canceled; the capture still
	// needs a live context.
	captureCtx, cancel := context.WithTimeout(Detach(ctx), screenshotTimeout)
	defer cancel()

	buf, err := l.shooter.Screenshot(captureCtx, l.quality)
	if err != nil {
		l.logger.Warn("Could not capture screenshot.", zap.String("activity", ev.Description), zap.Error(err))
		return
	}

	l.mu.Lock()
	l.seq++
	name := fmt.Sprintf("%03d-%s.%s", l.seq, slug(ev.Description), l.extension())
	l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		l.logger.Warn("Could not create screenshot directory.", zap.String("dir", l.dir), zap.Error(err))
		return
	}
	path := filepath.Join(l.dir, name)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		l.logger.Warn("Could not write screenshot.", zap.String("path", path), zap.Error(err))
		return
	}

	l.mu.Lock()
	l.files = append(l.files, path)
	l.mu.Unlock()
	l.logger.Debug("Screenshot saved.", zap.String("path", path), zap.String("actor", ev.Actor))
}

// Files returns the paths written so far, in capture order.
func (l *ScreenshotListener) Files() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.files...)
}

func (l *ScreenshotListener) extension() string {
	if l.quality >= 100 {
		return "png"
	}
	return "jpg"
}

// slug turns a description into a short, filesystem-safe name.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if runes := []rune(out); len(runes) > 60 {
		out = strings.TrimRight(string(runes[:60]), "-")
	}
	if out == "" {
		return "unnamed"
	}
	return out
}
