package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jask/arxivcs/internal/api"
	"github.com/jask/arxivcs/internal/conversation"
	"github.com/jask/arxivcs/internal/request"
	"github.com/jask/arxivcs/tabs"
)

// errFailed marks a request that failed after its message was printed.
var errFailed = errors.New("request failed")

func askCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Ask the chatbot one question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := oneShot()
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			return runAsk(ctx, client, strings.Join(args, " "), raw, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the answer without markdown rendering")
	return cmd
}

func runAsk(ctx context.Context, client *api.Client, query string, raw bool, out, errOut io.Writer) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New(tabs.EmptyQueryNotice)
	}
	ctrl := request.New[api.ChatResponse]("cli:chat", request.WithFailureMessage(conversation.ErrorReply))
	state := ctrl.Do(ctx, func(ctx context.Context) (api.ChatResponse, error) {
		return client.Chat(ctx, query)
	})
	if state.Status == request.Failure {
		fmt.Fprintln(errOut, state.Err)
		return errFailed
	}
	msg := conversation.NewBotMessage(state.Data, client.ImageURL, nowFunc())
	body := msg.Content
	if !raw {
		if rendered, err := glamour.Render(msg.Content, "dark"); err == nil {
			body = strings.Trim(rendered, "\n")
		}
	}
	fmt.Fprintln(out, body)
	if msg.Image != "" {
		fmt.Fprintf(out, "\nImage: %s\n", msg.Image)
	}
	if len(msg.Sources) > 0 {
		fmt.Fprintln(out, "\nSources:")
		for _, src := range msg.Sources {
			fmt.Fprintf(out, "  - %s\n", conversation.SourceDetail(src))
			if src.URL != "" {
				fmt.Fprintf(out, "    %s\n", src.URL)
			}
		}
	}
	return nil
}

func searchCmd() *cobra.Command {
	var maxResults int
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search arXiv computer science papers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := oneShot()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-results") {
				maxResults = cfg.Search.MaxResults
			}
			ctx, stop := signalContext()
			defer stop()
			return runSearch(ctx, client, strings.Join(args, " "), maxResults, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().IntVarP(&maxResults, "max-results", "n", 10, "number of papers to return (1-100)")
	return cmd
}

func runSearch(ctx context.Context, client *api.Client, query string, maxResults int, out, errOut io.Writer) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New(tabs.EmptySearchNotice)
	}
	if maxResults < 1 || maxResults > 100 {
		return fmt.Errorf("--max-results must be between 1 and 100, got %d", maxResults)
	}
	ctrl := request.New[[]api.Paper]("cli:search", request.WithFailureMessage(tabs.SearchFailure))
	state := ctrl.Do(ctx, func(ctx context.Context) ([]api.Paper, error) {
		return client.Search(ctx, query, maxResults)
	})
	if state.Status == request.Failure {
		fmt.Fprintln(errOut, state.Err)
		return errFailed
	}
	if len(state.Data) == 0 {
		fmt.Fprintln(out, tabs.NoPapersNotice)
		return nil
	}
	fmt.Fprintf(out, "Found %d papers\n", len(state.Data))
	for i, p := range state.Data {
		fmt.Fprintf(out, "\n%d. %s\n", i+1, p.Title)
		fmt.Fprintf(out, "   arXiv:%s  %s\n", p.ID, p.Published)
		if len(p.Authors) > 0 {
			fmt.Fprintf(out, "   %s\n", strings.Join(p.Authors, ", "))
		}
		fmt.Fprintf(out, "   %s\n", p.AbsURL())
	}
	return nil
}

func visualizeCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "visualize CONCEPT",
		Short: "Generate a diagram for a computer science concept",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := oneShot()
			if err != nil {
				return err
			}
			dir := ""
			if save {
				dir = cfg.Images.Dir
			}
			ctx, stop := signalContext()
			defer stop()
			return runVisualize(ctx, client, strings.Join(args, " "), dir, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "download the image into images.dir")
	return cmd
}

// runVisualize prints the image URL and, when dir is set, downloads it there.
func runVisualize(ctx context.Context, client *api.Client, concept, dir string, out, errOut io.Writer) error {
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return errors.New(tabs.EmptyConceptNotice)
	}
	ctrl := request.New[api.VisualizeResponse]("cli:visualize", request.WithFailureMessage(tabs.VisualizeFailure))
	state := ctrl.Do(ctx, func(ctx context.Context) (api.VisualizeResponse, error) {
		return client.Visualize(ctx, concept)
	})
	if state.Status == request.Failure {
		fmt.Fprintln(errOut, state.Err)
		return errFailed
	}
	if state.Data.Message != "" {
		fmt.Fprintln(out, state.Data.Message)
	}
	fmt.Fprintln(out, client.ImageURL(state.Data.Image))
	if dir == "" {
		return nil
	}
	path := filepath.Join(dir, filepath.Base(state.Data.Image))
	if err := api.SaveImage(ctx, client, state.Data.Image, path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved to %s\n", path)
	return nil
}

func imageCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "image NAME",
		Short: "Download an image produced by chat or visualize",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := oneShot()
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			name := args[0]
			if output == "-" {
				_, err := client.FetchImage(ctx, name, cmd.OutOrStdout())
				return err
			}
			if output == "" {
				output = filepath.Base(name)
			}
			if err := api.SaveImage(ctx, client, name, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, - for stdout (default: the image name)")
	return cmd
}
