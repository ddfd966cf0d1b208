package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/arxivcs/internal/api"
	"github.com/jask/arxivcs/internal/config"
	"github.com/jask/arxivcs/internal/logging"
)

var (
	version    = "0.1.0"
	configPath string
	nowFunc    = time.Now
)

func main() {
	root := &cobra.Command{
		Use:           "arxivcs",
		Short:         "Terminal client for the arXiv CS expert backend",
		Long:          "arxivcs chats about computer science papers, searches arXiv and renders concept diagrams through the arXiv CS expert HTTP backend.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.toml (default: ~/.config/arxivcs/config.toml)")
	root.Flags().String("route", "", "screen to open first: /, /chat, /search or /visualize")

	root.AddCommand(askCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(visualizeCmd())
	root.AddCommand(imageCmd())
	root.AddCommand(doctorCmd())
	root.AddCommand(stubCmd())

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	if configPath != "" {
		if err := os.Setenv("ARXIVCS_CONFIG", configPath); err != nil {
			return config.Config{}, err
		}
	}
	return config.Load()
}

func newClient(cfg config.Config) (*api.Client, error) {
	return api.New(cfg.Backend.BaseURL,
		api.WithTimeout(cfg.Backend.Timeout),
		api.WithUserAgent("arxivcs/"+version),
	)
}

// oneShot loads config, logs to stderr and builds a client for commands
// that print a result and exit.
func oneShot() (config.Config, *api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := logging.SetupConsole(os.Stderr, cfg.Log.Level); err != nil {
		return config.Config{}, nil, err
	}
	client, err := newClient(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, client, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
