package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/DoyleJ11/innings-scorer/internal/config"
	"github.com/DoyleJ11/innings-scorer/internal/httpapi"
	"github.com/DoyleJ11/innings-scorer/internal/logging"
)

func main() {
	if err := run(flag.CommandLine, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run(fs *flag.FlagSet, args []string) (err error) {
	if err := config.LoadEnvFiles(".env"); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	cfg, err := config.ParseConfig(fs, args)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { err = multierr.Append(err, syncLogger(logger)) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Build the router *with* the hub injected
	err = httpapi.ListenAndServe(ctx, cfg.Addr, httpapi.Options{
		Openers:        cfg.Openers(),
		ClientBuffer:   cfg.ClientBuffer,
		OriginPatterns: cfg.OriginPatterns,
		Logger:         logger,
	})
	if err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
	return err
}

// syncLogger flushes logger, ignoring the errors stderr gives when it is a terminal.
func syncLogger(logger *zap.Logger) error {
	err := logger.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
