package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"finmanager/internal/buildinfo"
	"finmanager/internal/client"
	"finmanager/internal/config"
	"finmanager/internal/relay"
)

const requestTimeout = 10 * time.Second

// app carries the dependencies shared by every subcommand. They are built in
// the root command's pre-run hook once flags are parsed.
type app struct {
	apiURL    string
	themeName string

	client *client.Client
	relay  *relay.Relay
	theme  Theme
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "finctl",
		Short:   "Track transactions, categories and counterparties",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API base URL (defaults to $API_URL)")
	rootCmd.PersistentFlags().StringVar(&a.themeName, "theme", "dark", "color theme: light or dark")

	rootCmd.AddCommand(
		newCategoriesCommand(a),
		newCounterpartiesCommand(a),
		newTransactionsCommand(a),
		newSystemCommand(a),
	)

	return rootCmd
}

func (a *app) init(ctx context.Context) error {
	theme, err := ThemeByName(a.themeName)
	if err != nil {
		return err
	}
	a.theme = theme

	if a.apiURL == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.apiURL = cfg.APIURL
	}

	a.client = client.New(a.apiURL, &http.Client{Timeout: requestTimeout})
	a.relay = relay.New(a.client, relay.Options{UserAgent: a.client.UserAgent()})

	probeCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	_, probeErr := a.client.SystemInfo(probeCtx)
	_ = a.relay.SetOnline(probeCtx, probeErr == nil)
	return nil
}

// report ships a failure to the backend log and returns err unchanged.
func (a *app) report(cmd *cobra.Command, message string, err error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()
	_ = a.relay.Error(ctx, message, map[string]any{
		"command": cmd.CommandPath(),
		"error":   err.Error(),
	})
	return err
}
