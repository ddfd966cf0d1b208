package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/arxivcs/core"
	"github.com/jask/arxivcs/internal/api"
	"github.com/jask/arxivcs/internal/config"
	"github.com/jask/arxivcs/internal/logging"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and backend reachability",
		Long: `Loads the configuration, prints the effective settings and pings the
backend's health endpoint. Reports pass/fail for each check.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "arxivcs doctor v%s\n\n", version)

			cfg, err := loadConfig()
			if err != nil {
				printFail(out, "Config", err.Error())
				return errFailed
			}
			printPass(out, "Config", describeConfig(cfg))
			if err := logging.SetupConsole(os.Stderr, cfg.Log.Level); err != nil {
				printFail(out, "Log level", err.Error())
				return errFailed
			}

			client, err := newClient(cfg)
			if err != nil {
				printFail(out, "Base URL", err.Error())
				return errFailed
			}
			ctx, stop := signalContext()
			defer stop()
			if !checkBackend(ctx, client, out) {
				return errFailed
			}
			return nil
		},
	}
}

func describeConfig(cfg config.Config) string {
	route, redirected := core.DefaultRoutes().Resolve(cfg.UI.StartRoute)
	start := route.Path
	if redirected {
		start += " (redirected from " + cfg.UI.StartRoute + ")"
	}
	timeout := "none"
	if cfg.Backend.Timeout > 0 {
		timeout = cfg.Backend.Timeout.String()
	}
	return fmt.Sprintf("backend=%s timeout=%s max_results=%d images=%s start=%s discard_stale=%v",
		cfg.Backend.BaseURL, timeout, cfg.Search.MaxResults, cfg.Images.Dir, start, cfg.UI.DiscardStale)
}

// checkBackend pings GET / with a short deadline of its own.
func checkBackend(ctx context.Context, client *api.Client, out io.Writer) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	started := time.Now()
	msg, err := client.Ping(ctx)
	if err != nil {
		printFail(out, "Backend", fmt.Sprintf("%s: %v", client.BaseURL(), err))
		return false
	}
	printPass(out, "Backend", fmt.Sprintf("%s (%s, %s)", client.BaseURL(), msg, time.Since(started).Round(time.Millisecond)))
	return true
}

func printPass(w io.Writer, name, detail string) {
	fmt.Fprintf(w, "  ✓ %-10s %s\n", name, detail)
}

func printFail(w io.Writer, name, detail string) {
	fmt.Fprintf(w, "  ✗ %-10s %s\n", name, detail)
}
