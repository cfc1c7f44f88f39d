package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"encyclopedia/pkg/server"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *options) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the wiki web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			core, err := newCore(cfg)
			if err != nil {
				return err
			}
			srv, err := server.New(core, logger)
			if err != nil {
				return errors.Wrap(err, "create server")
			}
			router := mux.NewRouter()
			srv.Register(router)

			httpSrv := &http.Server{
				Addr:              cfg.Listen,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("starting server",
					zap.String("listen", cfg.Listen),
					zap.String("entries_dir", cfg.EntriesDir),
					zap.String("markup", cfg.Markup),
				)
				errCh <- httpSrv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return errors.Wrap(err, "run server")
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				return errors.Wrap(err, "shutdown server")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (overrides config)")
	return cmd
}
