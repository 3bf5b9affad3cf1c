// internal/steps/steps_e2e_test.go
package steps_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/screenplay-cli/internal/browser"
	"github.com/xkilldash9x/screenplay-cli/internal/config"
	"github.com/xkilldash9x/screenplay-cli/internal/steps"
)

// TestLoginFeature_E2E runs the feature files against the public SauceDemo
// site in a real headless Chrome.
func TestLoginFeature_E2E(t *testing.T) {
	if os.Getenv("SCREENPLAY_E2E") != "1" {
		t.Skip("set SCREENPLAY_E2E=1 to run tests that launch a browser")
	}

	cfg := config.NewDefaultConfig()
	m, err := browser.NewManager(context.Background(), cfg.Browser(), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		assert.NoError(t, m.Shutdown(ctx))
	})

	deps := steps.Dependencies{Config: cfg, Sessions: steps.FromManager(m)}
	status := runSuite(t, deps, godog.Options{Paths: []string{"../../features"}})
	assert.Equal(t, 0, status)
	assert.Zero(t, m.ActiveSessions(), "every scenario releases its browser")
}
