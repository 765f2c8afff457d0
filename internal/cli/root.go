package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DoyleJ11/innings-scorer/internal/config"
	"github.com/DoyleJ11/innings-scorer/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	EnvFile string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the scorer CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "scorer",
		Short:         "Live cricket innings scorer",
		Long:          "Score a single cricket innings ball by ball from a terminal, a script or over HTTP/WebSocket.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "optional KEY=VALUE file loaded before the environment")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))

	return cmd
}

// loadConfig reads the env file and environment; --verbose forces debug logs.
func (o *RootOptions) loadConfig() (config.Config, *zap.Logger, error) {
	if err := config.LoadEnvFiles(o.EnvFile); err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := config.ParseEnv()
	if err != nil {
		return config.Config{}, nil, err
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}
