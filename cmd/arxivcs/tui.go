package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jask/arxivcs/core"
	"github.com/jask/arxivcs/internal/api"
	"github.com/jask/arxivcs/internal/config"
	"github.com/jask/arxivcs/internal/logging"
	"github.com/jask/arxivcs/screens"
	"github.com/jask/arxivcs/tabs"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer closer.Close()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	route, _ := cmd.Flags().GetString("route")
	if route == "" {
		route = cfg.UI.StartRoute
	}

	model := buildModel(cfg, client)
	model.Navigate(route)
	log.Info().
		Str("base_url", client.BaseURL()).
		Str("route", model.Path()).
		Bool("discard_stale", cfg.UI.DiscardStale).
		Msg("starting tui")

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func buildModel(cfg config.Config, client *api.Client) core.Model {
	opts := tabs.Options{
		DiscardStale: cfg.UI.DiscardStale,
		MaxResults:   cfg.Search.MaxResults,
		ImageDir:     cfg.Images.Dir,
	}
	chat := tabs.NewChatTab(client, opts)
	search := tabs.NewSearchTab(client, opts)
	vis := tabs.NewVisualizeTab(client, client, opts)

	bindings := core.DefaultKeyBindings()
	if len(cfg.Keys) > 0 {
		bindings = core.ApplyActionKeybindings(bindings, cfg.Keys)
	}
	model := core.NewModel(
		[]core.Tab{chat, search, vis},
		core.DefaultRoutes(),
		core.NewKeyRegistry(bindings),
		core.NewCommandRegistry(tabs.Commands(chat, search, vis)),
	)
	model.OpenCommandModal = screens.OpenCommandScreen
	model.OpenRouteModal = screens.OpenRouteScreen
	return model
}
