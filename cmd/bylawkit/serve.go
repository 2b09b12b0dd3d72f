package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/bylawkit/bylaw"
	"github.com/reoring/bylawkit/server"
	"github.com/reoring/bylawkit/store"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	st, err := store.Open(a.cfg.Store.Driver, a.cfg.Store.DSN)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	a.logger.Info("starting",
		zap.String("store", a.cfg.Store.Driver),
		zap.String("language", a.cfg.Language),
	)
	srv := server.New(server.Options{
		Store:     st,
		Validator: bylaw.NewValidator(),
		Logger:    a.logger,
		Parse:     a.cfg.ParseOpt(),
	})
	return srv.Run(ctx, a.cfg.Server)
}
