// internal/steps/steps.go
package steps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"go.uber.org/zap"

	"github.com/xkilldash9x/screenplay-cli/internal/browser"
	"github.com/xkilldash9x/screenplay-cli/internal/config"
	"github.com/xkilldash9x/screenplay-cli/internal/observability"
	"github.com/xkilldash9x/screenplay-cli/internal/saucedemo"
	"github.com/xkilldash9x/screenplay-cli/internal/screenplay"
)

const teardownTimeout = 15 * time.Second

var (
	// ErrNoSessions is returned by the Before hook when Dependencies carries
	// no SessionFactory.
	ErrNoSessions = errors.New("no browser session factory configured")

	// ErrNoConfig is returned by the Before hook when Dependencies carries no
	// configuration.
	ErrNoConfig = errors.New("no configuration provided")

	// ErrNoActor is returned by steps that run after a failed set up.
	ErrNoActor = errors.New("scenario has no actor")
)

// Session is the per-scenario browser handed to the actor.
type Session interface {
	screenplay.Driver
	browser.Screenshotter
	Close(ctx context.Context) error
}

// SessionFactory opens a fresh, exclusively owned Session for one scenario.
type SessionFactory func(ctx context.Context) (Session, error)

// FromManager adapts a browser.Manager into a SessionFactory.
func FromManager(m *browser.Manager) SessionFactory {
	return func(ctx context.Context) (Session, error) {
		s, err := m.NewSession(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Dependencies are the collaborators shared by every scenario of a run.
type Dependencies struct {
	Config   config.Interface
	Sessions SessionFactory
}

// scenarioState is built fresh for each scenario; godog calls the
// initializer once per scenario.
type scenarioState struct {
	deps     Dependencies
	logger   *zap.Logger
	session  Session
	actor    *screenplay.Actor
	recorder *screenplay.Recorder
	shots    *browser.ScreenshotListener
}

// InitializeScenario returns a godog ScenarioInitializer that gives each
// scenario its own browser and actor and registers the login steps.
func InitializeScenario(deps Dependencies) func(*godog.ScenarioContext) {
	return func(sc *godog.ScenarioContext) {
		s := &scenarioState{
			deps:   deps,
			logger: observability.GetLogger().Named("steps"),
		}

		sc.Before(s.setUp)
		sc.After(s.tearDown)

		sc.Step(`^que el usuario abre la página de SauceDemo$`, s.opensSauceDemo)
		sc.Step(`^ingresa su usuario "([^"]*)" y contraseña "([^"]*)"$`, s.entersCredentials)
		sc.Step(`^ingresa su usuario "([^"]*)"$`, s.entersUsername)
		sc.Step(`^ingresa su contraseña "([^"]*)"$`, s.entersPassword)
		sc.Step(`^presiona el botón de login$`, s.pressesLogin)
		sc.Step(`^debería ver la página de inventario$`, s.shouldSeeInventory)
		sc.Step(`^no debería ver la página de inventario$`, s.shouldNotSeeInventory)
		sc.Step(`^los productos deberían estar visibles en la lista$`, s.shouldSeeProducts)
		sc.Step(`^intenta iniciar sesión con usuario "([^"]*)" y contraseña "([^"]*)"$`, s.attemptsInlineLogin)
		sc.Step(`^intenta iniciar sesión con usuario "([^"]*)" y contraseña "([^"]*)" usando la tarea de Login$`, s.attemptsLoginTask)
		sc.Step(`^debería ver mensaje de error de login$`, s.shouldSeeLoginError)
	}
}

func (s *scenarioState) setUp(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
	if s.deps.Sessions == nil {
		return ctx, ErrNoSessions
	}
	if s.deps.Config == nil {
		return ctx, ErrNoConfig
	}
	session, err := s.deps.Sessions(ctx)
	if err != nil {
		return ctx, fmt.Errorf("opening browser for scenario %q: %w", sc.Name, err)
	}
	s.session = session

	name := s.deps.Config.Scenario().ActorName
	s.recorder = &screenplay.Recorder{}
	listeners := []screenplay.Listener{s.recorder}

	shotsCfg := s.deps.Config.Browser().Screenshots
	if shotsCfg.Policy != "" && shotsCfg.Policy != config.ScreenshotsDisabled {
		s.shots = browser.NewScreenshotListener(session, shotsCfg, sc.Name, s.logger)
		listeners = append(listeners, s.shots)
	}

	s.actor = screenplay.Named(name,
		screenplay.WithLogger(observability.ForActor(name, sc.Name)),
		screenplay.WithListener(listeners...),
	).WhoCan(screenplay.BrowseTheWebWith(session))

	s.logger.Debug("Scenario set up.", zap.String("scenario", sc.Name), zap.String("actor", name))
	return ctx, nil
}

// tearDown releases the browser on every exit path. A failure to close is
// logged and does not change the scenario's result.
func (s *scenarioState) tearDown(ctx context.Context, sc *godog.Scenario, scenarioErr error) (context.Context, error) {
	if s.actor != nil {
		s.actor.Dismiss()
	}
	if s.session == nil {
		return ctx, nil
	}

	fields := []zap.Field{zap.String("scenario", sc.Name), zap.Strings("trace", s.recorder.Trace())}
	if s.shots != nil {
		fields = append(fields, zap.Strings("screenshots", s.shots.Files()))
	}
	if scenarioErr != nil {
		s.logger.Warn("Scenario failed.", append(fields, zap.Error(scenarioErr))...)
	} else {
		s.logger.Info("Scenario passed.", fields...)
	}

	closeCtx, cancel := context.WithTimeout(browser.Detach(ctx), teardownTimeout)
	defer cancel()
	if err := s.session.Close(closeCtx); err != nil {
		s.logger.Warn("Failed to close browser session.", zap.String("scenario", sc.Name), zap.Error(err))
	}
	s.session = nil
	return ctx, nil
}

func (s *scenarioState) attempt(ctx context.Context, activities ...screenplay.Activity) error {
	if s.actor == nil {
		return ErrNoActor
	}
	return s.actor.AttemptsTo(ctx, activities...)
}

func (s *scenarioState) should(ctx context.Context, consequences ...screenplay.Consequence) error {
	if s.actor == nil {
		return ErrNoActor
	}
	return s.actor.Should(ctx, consequences...)
}

func (s *scenarioState) opensSauceDemo(ctx context.Context) error {
	return s.attempt(ctx, saucedemo.OpenTheApplication(s.deps.Config.Scenario().BaseURL))
}

func (s *scenarioState) entersCredentials(ctx context.Context, username, password string) error {
	return s.attempt(ctx,
		screenplay.Enter(username).Into(saucedemo.LoginPage.UsernameField),
		screenplay.Enter(password).Masked().Into(saucedemo.LoginPage.PasswordField),
	)
}

func (s *scenarioState) entersUsername(ctx context.Context, username string) error {
	return s.attempt(ctx, screenplay.Enter(username).Into(saucedemo.LoginPage.UsernameField))
}

func (s *scenarioState) entersPassword(ctx context.Context, password string) error {
	return s.attempt(ctx, screenplay.Enter(password).Masked().Into(saucedemo.LoginPage.PasswordField))
}

func (s *scenarioState) pressesLogin(ctx context.Context) error {
	return s.attempt(ctx, screenplay.Click(saucedemo.LoginPage.LoginButton))
}

// attemptsInlineLogin builds its targets on the spot instead of using the
// page catalog.
func (s *scenarioState) attemptsInlineLogin(ctx context.Context, username, password string) error {
	return s.attempt(ctx,
		screenplay.Enter(username).Into(screenplay.The("username field").LocatedBy(screenplay.ByID("user-name"))),
		screenplay.Enter(password).Masked().Into(screenplay.The("password field").LocatedBy(screenplay.ByID("password"))),
		screenplay.Click(screenplay.The("login button").LocatedBy(screenplay.ByID("login-button"))),
	)
}

func (s *scenarioState) attemptsLoginTask(ctx context.Context, username, password string) error {
	return s.attempt(ctx, saucedemo.Login(saucedemo.User{Username: username, Password: password}))
}

func (s *scenarioState) shouldSeeInventory(ctx context.Context) error {
	return s.should(ctx, screenplay.SeeThat(saucedemo.InventoryPageIsVisible(), screenplay.IsTrue()))
}

func (s *scenarioState) shouldNotSeeInventory(ctx context.Context) error {
	return s.should(ctx, screenplay.SeeThat(saucedemo.InventoryPageIsVisible(), screenplay.IsFalse()))
}

func (s *scenarioState) shouldSeeProducts(ctx context.Context) error {
	return s.should(ctx, screenplay.SeeThat(saucedemo.ProductsListAreVisible(), screenplay.IsTrue()))
}

func (s *scenarioState) shouldSeeLoginError(ctx context.Context) error {
	return s.should(ctx, screenplay.SeeThat(saucedemo.LoginErrorIsVisible(), screenplay.IsTrue()))
}
