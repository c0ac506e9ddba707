package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/cord-cli/internal/ingest"
	"github.com/sells-group/cord-cli/internal/pipeline"
	"github.com/sells-group/cord-cli/internal/server"
)

var (
	serveInput string
	servePort  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cleaned table and summary views over HTTP",
	Long: `Runs the cleaning pipeline once at startup and serves the result as a JSON
API for the dashboard: /api/records with year/journal/abstract filters,
/api/overview, /api/report, and the /api/summary views.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		raw, err := ingest.Load(serveInput, cfg.Ingest)
		if err != nil {
			return eris.Wrap(err, "serve: load input")
		}

		result, err := pipeline.New(cfg).Run(ctx, serveInput, raw)
		if err != nil {
			return eris.Wrap(err, "serve: run pipeline")
		}

		port := cfg.Server.Port
		if servePort != 0 {
			port = servePort
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: server.New(result, cfg.Server, cfg.Summary).Router(),
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			zap.L().Info("serve: listening",
				zap.Int("port", port),
				zap.Int("rows", result.Table.Rows()),
			)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "serve: listen")
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveInput, "input", "", "path to metadata file (required)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	_ = serveCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(serveCmd)
}
