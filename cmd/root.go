// File: cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/screenplay-cli/internal/config"
	"github.com/xkilldash9x/screenplay-cli/internal/observability"
)

type contextKey string

const configKey contextKey = "config"

var cfgFile string

// newRootCmd builds the command tree. Each call returns an independent tree
// with its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	cmd := &cobra.Command{
		Use:           "screenplay-cli",
		Short:         "Runs Screenplay-style BDD scenarios against SauceDemo.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 1. Locate and read the configuration sources.
			if err := initializeConfig(v); err != nil {
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "screenplay-cli"})
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			// 2. Build and validate the configuration. Flags bound by
			// subcommands are already visible to v.
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "screenplay-cli"})
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			// 3. Logging.
			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Debug("Starting screenplay-cli",
				zap.String("version", Version), zap.String("config_file", v.ConfigFileUsed()))

			// 4. Hand the config to subcommands.
			cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
			return nil
		},
	}
	cmd.SetVersionTemplate(`{{.Name}} version {{.Version}}` + "\n")
	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./screenplay.yaml or ~/.screenplay/screenplay.yaml)")

	cmd.AddCommand(newRunCmd(v))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// initializeConfig wires the config file and SCREENPLAY_ environment
// variables into v.
func initializeConfig(v *viper.Viper) error {
	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return fmt.Errorf("expanding config path: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("screenplay")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".screenplay"))
		}
	}

	v.SetEnvPrefix("SCREENPLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and environment only.
	}
	return nil
}

// configFrom returns the config stored by the root command.
func configFrom(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}

// Execute runs the root command with os.Args.
func Execute(ctx context.Context) error {
	return execute(ctx, os.Args[1:], os.Stdout)
}

func execute(ctx context.Context, args []string, out io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, ErrScenariosFailed) && !errors.Is(err, context.Canceled) {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
	}
	return err
}

// ExitCode maps the result of Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrScenariosFailed):
		return 1
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 2
	}
}
