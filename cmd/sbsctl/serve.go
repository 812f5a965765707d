package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"embedded-batteries-go/async"
	"embedded-batteries-go/exporter"
)

func NewServeCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: gRead,
		Short:   "Serve battery metrics over HTTP",
		Long: `Serve Prometheus metrics (/metrics), a JSON snapshot (/battery) and a
health check (/healthz). One goroutine owns the bus; requests queue behind it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer s.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := async.NewWorker()
			w.Start(ctx)

			ec := exporter.DefaultConfig()
			ec.Name = cfg.Name
			ec.Timeout = cfg.Timeout
			ec.Logger = logrus.StandardLogger()
			return exporter.New(w.Battery(s.battery), ec).ListenAndServe(ctx, cfg.Listen)
		},
	}
	cmd.Flags().StringVar(&cfg.Listen, "listen", cfg.Listen, "listen address")
	cmd.Flags().StringVar(&cfg.Name, "name", cfg.Name, "battery label on every metric")
	return cmd
}
