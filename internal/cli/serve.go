package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/DoyleJ11/innings-scorer/internal/httpapi"
)

func NewServeCommand(root *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve innings over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, log, err := root.loadConfig()
			if err != nil {
				return err
			}
			defer func() { err = multierr.Append(err, syncLogger(log)) }()
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return httpapi.ListenAndServe(ctx, cfg.Addr, httpapi.Options{
				Openers:        cfg.Openers(),
				ClientBuffer:   cfg.ClientBuffer,
				OriginPatterns: cfg.OriginPatterns,
				Logger:         log,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides SCORER_ADDR)")
	return cmd
}

// syncLogger flushes log. Syncing a terminal's stderr fails with EINVAL or
// ENOTTY on most platforms; that is not worth reporting.
func syncLogger(log *zap.Logger) error {
	err := log.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
