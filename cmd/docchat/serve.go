package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thywilljoshua/docchat/internal/config"
	"github.com/thywilljoshua/docchat/internal/metrics"
	"github.com/thywilljoshua/docchat/internal/server"
	"github.com/thywilljoshua/docchat/internal/session"
)

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.App.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log := newLogger(cfg)
			defer log.Sync()

			gw, err := newGateway(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			ctrl := session.NewController(session.NewStore(), newAdapter(cfg, log), gw,
				session.WithLogger(log.Named("session")),
				session.WithObserver(metrics.New(prometheus.DefaultRegisterer)),
			)
			srv := server.New(cfg, ctrl, prometheus.DefaultGatherer, log.Named("http"))

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Run() }()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case s := <-sig:
				log.Info("shutting down", zap.String("signal", s.String()))
				if err := srv.Shutdown(); err != nil {
					return errors.Join(err, <-errCh)
				}
				return <-errCh
			}
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides APP_PORT)")
	return cmd
}
