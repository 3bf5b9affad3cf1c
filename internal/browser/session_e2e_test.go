// internal/browser/session_e2e_test.go
package browser

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/screenplay-cli/internal/config"
	"github.com/xkilldash9x/screenplay-cli/internal/screenplay"
)

const testPage = `<!DOCTYPE html>
<html><body>
  <input id="user-name" type="text" value="prefilled">
  <button id="go" onclick="document.getElementById('out').innerText = document.getElementById('user-name').value">Go</button>
  <div id="out"></div>
  <div class="item" style="display:none">hidden first</div>
  <div class="item">visible second</div>
  <div class="card">only</div>
</body></html>`

// requireBrowser skips unless real browser tests were asked for.
func requireBrowser(t *testing.T) {
	t.Helper()
	if os.Getenv("SCREENPLAY_E2E") != "1" {
		t.Skip("set SCREENPLAY_E2E=1 to run tests that launch a browser")
	}
}

func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	requireBrowser(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintln(w, testPage)
	}))
	t.Cleanup(server.Close)

	cfg := config.NewDefaultConfig().Browser()
	cfg.ImplicitWait = 500 * time.Millisecond

	m, err := NewManager(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := m.Shutdown(ctx); err != nil {
			t.Logf("Warning: error during browser manager shutdown: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	s, err := m.NewSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, m.ActiveSessions())
	return s, server.URL
}

func TestSession_E2E(t *testing.T) {
	s, url := newTestSession(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	require.NoError(t, s.Navigate(ctx, url))

	t.Run("SetValueReplacesAndClickRuns", func(t *testing.T) {
		input, err := s.Locate(ctx, screenplay.ByID("user-name"))
		require.NoError(t, err)
		require.NoError(t, input.SetValue(ctx, "standard_user"))

		button, err := s.Locate(ctx, screenplay.ByXPath("//button[@id='go']"))
		require.NoError(t, err)
		require.NoError(t, button.Click(ctx))

		out, err := s.Locate(ctx, screenplay.ByID("out"))
		require.NoError(t, err)
		text, err := out.Text(ctx)
		require.NoError(t, err)
		assert.Equal(t, "standard_user", text)
	})

	t.Run("LocateAllKeepsDocumentOrder", func(t *testing.T) {
		items, err := s.LocateAll(ctx, screenplay.ByCSS(".item"))
		require.NoError(t, err)
		require.Len(t, items, 2)

		first, err := items[0].Visible(ctx)
		require.NoError(t, err)
		second, err := items[1].Visible(ctx)
		require.NoError(t, err)
		assert.False(t, first)
		assert.True(t, second)
	})

	t.Run("NoMatchAfterImplicitWait", func(t *testing.T) {
		start := time.Now()
		items, err := s.LocateAll(ctx, screenplay.ByCSS(".missing"))
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.GreaterOrEqual(t, time.Since(start), 400*time.Millisecond)

		_, err = s.Locate(ctx, screenplay.ByID("missing"))
		assert.ErrorIs(t, err, screenplay.ErrElementNotFound)
	})

	t.Run("Screenshot", func(t *testing.T) {
		buf, err := s.Screenshot(ctx, 100)
		require.NoError(t, err)
		assert.NotEmpty(t, buf)
	})

	t.Run("FirstMatchVisibilityThroughAnActor", func(t *testing.T) {
		actor := screenplay.Named("usuario").WhoCan(screenplay.BrowseTheWebWith(s))
		items := screenplay.The("items").LocatedBy(screenplay.ByCSS(".item"))
		cards := screenplay.The("cards").LocatedBy(screenplay.ByCSS(".card"))

		assert.False(t, screenplay.AsksFor(ctx, actor, screenplay.VisibilityOfAll(items)))
		assert.True(t, screenplay.AsksFor(ctx, actor, screenplay.VisibilityOfAll(cards)))
	})

	require.NoError(t, s.Close(ctx))
	require.NoError(t, s.Close(ctx), "close is idempotent")
}
