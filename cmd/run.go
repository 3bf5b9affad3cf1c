// File: cmd/run.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cucumber/godog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/screenplay-cli/internal/browser"
	"github.com/xkilldash9x/screenplay-cli/internal/config"
	"github.com/xkilldash9x/screenplay-cli/internal/observability"
	"github.com/xkilldash9x/screenplay-cli/internal/steps"
)

// ErrScenariosFailed is returned by the run command when at least one
// scenario failed.
var ErrScenariosFailed = errors.New("one or more scenarios failed")

const shutdownTimeout = 30 * time.Second

// openBrowsers prepares the per-scenario session factory and returns the
// function that releases everything it started. Replaced in tests.
var openBrowsers = func(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (steps.SessionFactory, func(context.Context) error, error) {
	m, err := browser.NewManager(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return steps.FromManager(m), m.Shutdown, nil
}

// newRunCmd creates the `run` command. Its flags are bound to v so they take
// precedence over the config file and environment.
func newRunCmd(v *viper.Viper) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Runs the feature files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := configFrom(ctx)
			if err != nil {
				return err
			}
			sc := cfg.Scenario()

			out := cmd.OutOrStdout()
			if sc.Output != "" {
				f, err := createOutput(sc.Output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			sessions, shutdown, err := openBrowsers(ctx, cfg.Browser(), logger)
			if err != nil {
				return fmt.Errorf("failed to prepare browsers: %w", err)
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Warn("Error during browser shutdown", zap.Error(err))
				}
			}()

			logger.Info("Running features",
				zap.Strings("paths", sc.Paths),
				zap.String("tags", sc.Tags),
				zap.String("format", sc.Format),
				zap.String("base_url", sc.BaseURL),
				zap.Bool("headless", cfg.Browser().Headless),
			)

			status := runSuite(ctx, cfg, sessions, out)
			if err := ctx.Err(); err != nil {
				logger.Warn("Feature run interrupted", zap.Error(err))
				return err
			}

			switch status {
			case 0:
				logger.Info("All scenarios passed")
				return nil
			case 1:
				return ErrScenariosFailed
			default:
				return fmt.Errorf("feature run could not start (status %d)", status)
			}
		},
	}

	flags := runCmd.Flags()
	flags.StringSlice("features", nil, "Feature files or directories. (Overrides config/env)")
	flags.String("tags", "", "Tag expression selecting scenarios, e.g. '@smoke && ~@wip'.")
	flags.String("format", "", "Formatter: pretty, progress, cucumber, junit.")
	flags.StringP("output", "o", "", "Write the formatter output to this file instead of stdout.")
	flags.String("base-url", "", "SauceDemo base URL.")
	flags.Bool("headless", true, "Run Chrome without a window.")
	flags.Bool("strict", true, "Fail on undefined or pending steps.")

	bindings := map[string]string{
		"scenario.paths":    "features",
		"scenario.tags":     "tags",
		"scenario.format":   "format",
		"scenario.output":   "output",
		"scenario.base_url": "base-url",
		"browser.headless":  "headless",
		"scenario.strict":   "strict",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
	return runCmd
}

// runSuite executes the godog suite and returns its status: 0 passed,
// 1 failed, anything else an options error.
func runSuite(ctx context.Context, cfg config.Interface, sessions steps.SessionFactory, out io.Writer) int {
	sc := cfg.Scenario()
	return godog.TestSuite{
		Name: "screenplay-cli",
		ScenarioInitializer: steps.InitializeScenario(steps.Dependencies{
			Config:   cfg,
			Sessions: sessions,
		}),
		Options: &godog.Options{
			Format:         sc.Format,
			Paths:          sc.Paths,
			Tags:           sc.Tags,
			Strict:         sc.Strict,
			Output:         out,
			NoColors:       sc.Output != "",
			DefaultContext: ctx,
		},
	}.Run()
}

func createOutput(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, nil
}
