package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"clientdesk/internal/logging"
	"clientdesk/internal/mockapi"
)

func main() {
	var (
		addr     string
		seed     int
		logLevel string
	)
	cmd := &cobra.Command{
		Use:          "mockapi",
		Short:        "In-memory clients backend for development",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, _, err := logging.New(logging.Config{Level: logLevel, Format: "text", Output: "stderr"})
			if err != nil {
				return err
			}

			store := mockapi.NewStore()
			store.Seed(seed)

			srv := &http.Server{
				Addr:              addr,
				Handler:           mockapi.NewServer(store, log),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(sctx)
			}()

			log.WithField("addr", addr).WithField("clients", store.Len()).Info("mockapi listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&seed, "seed", 48, "number of generated clients")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
