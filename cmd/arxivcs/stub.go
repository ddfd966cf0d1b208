package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jask/arxivcs/internal/logging"
	"github.com/jask/arxivcs/internal/stub"
)

func stubCmd() *cobra.Command {
	var (
		addr      string
		latency   time.Duration
		failToken string
		papers    int
		seed      int64
	)
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve a canned backend for local development",
		Long: `Runs an HTTP server with the backend's routes (/, /chat, /search,
/visualize, /images/{name}) answering from a small built-in paper list.
Queries containing the fail token return a 500 so error states can be tried.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.SetupConsole(os.Stderr, "info"); err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           stub.New(stubOptions(latency, failToken, papers, seed)).Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			ctx, stop := signalContext()
			defer stop()
			return serve(ctx, srv)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8000", "listen address")
	cmd.Flags().DurationVar(&latency, "latency", 0, "delay added to every POST response")
	cmd.Flags().StringVar(&failToken, "fail-token", stub.DefaultFailToken, "substring that makes a request fail; empty disables")
	cmd.Flags().IntVar(&papers, "papers", 0, "serve this many generated papers instead of the built-in list")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for --papers")
	return cmd
}

func stubOptions(latency time.Duration, failToken string, papers int, seed int64) stub.Options {
	opts := stub.Options{Latency: latency, FailToken: failToken}
	if papers > 0 {
		opts.Papers = stub.GeneratePapers(papers, seed)
	}
	return opts
}

// serve runs srv until ctx is cancelled, then shuts it down.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("stub backend listening")
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("stub: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("stub backend shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("stub shutdown: %w", err)
	}
	return nil
}
