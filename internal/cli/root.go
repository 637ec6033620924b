// Package cli implements blockctl, a scriptable front end to the court
// blocking console for operators working from a terminal.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/internal/client"
	"github.com/tennisclub/court-admin/internal/service"
	"github.com/tennisclub/court-admin/internal/store"
	"github.com/tennisclub/court-admin/pkg/config"
)

// App holds the persistent flags and the lazily wired console.
type App struct {
	BaseURL    string
	Token      string
	PrettyJSON bool
	Yes        bool

	cfg     *config.Config
	console *service.Console
	backend *client.Client
	state   *store.State
	now     service.Clock
}

// NewRootCmd builds the blockctl command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{state: store.NewState()})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "blockctl",
		Short:        "Manage court blocks, series and templates",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Upcoming blocks
  blockctl blocks list

  # Delete every batch touching blocks 12 and 13 without prompting
  blockctl bulk delete --ids 12,13 --yes

  # Move selected blocks to a new reason
  blockctl bulk edit --ids 12,13 --reason 4
`),
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "backend", envOr("BACKEND_BASE_URL", ""), "Backend base URL (overrides BACKEND_BASE_URL)")
	cmd.PersistentFlags().StringVar(&app.Token, "token", envOr("BACKEND_TOKEN", ""), "Bearer token sent to the backend")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Yes, "yes", "y", false, "Answer yes to confirmation prompts")

	cmd.AddCommand(newBlocksCmd(app))
	cmd.AddCommand(newBulkCmd(app))
	cmd.AddCommand(newSeriesCmd(app))
	cmd.AddCommand(newTemplatesCmd(app))
	cmd.AddCommand(newReasonsCmd(app))
	cmd.AddCommand(newExportCmd(app))

	return cmd
}

func (app *App) wire() error {
	if app.console != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if app.BaseURL != "" {
		cfg.Backend.BaseURL = strings.TrimRight(app.BaseURL, "/")
	}
	if app.Token != "" {
		cfg.Backend.Token = app.Token
	}
	app.cfg = cfg
	app.backend = client.New(cfg.Backend, zap.NewNop())

	console, err := service.NewConsole(service.ConsoleDeps{
		Backend:  app.backend,
		Cache:    service.NewCacheService(nil, nil, cfg.Cache.TTL, nil, false),
		Blocks:   cfg.Blocks,
		CacheTTL: cfg.Cache.TTL,
	})
	if err != nil {
		return err
	}
	if app.now != nil {
		console.SetClock(app.now)
	}
	app.console = console
	return nil
}

func (app *App) scope() (service.Scope, *service.Toasts) {
	toasts := &service.Toasts{}
	return service.Scope{State: app.state, Notifier: toasts}, toasts
}

// confirmer asks on the command's input unless --yes was given.
func (app *App) confirmer(cmd *cobra.Command) service.Confirmer {
	return service.ConfirmFunc(func(_ context.Context, prompt string) bool {
		if app.Yes {
			return true
		}
		return ask(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt)
	})
}

func ask(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [j/N] ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "j", "ja", "y", "yes":
		return true
	}
	return false
}

type output struct {
	Data   interface{}     `json:"data"`
	Toasts []service.Toast `json:"toasts,omitempty"`
}

func writeOut(cmd *cobra.Command, app *App, v interface{}, toasts *service.Toasts) error {
	out := output{Data: v}
	if toasts != nil {
		out.Toasts = toasts.Items()
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

// writeErr prints the toasts gathered before a failure and returns err.
func writeErr(cmd *cobra.Command, err error, toasts *service.Toasts) error {
	if toasts != nil {
		for _, t := range toasts.Items() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", t.Level, t.Message)
		}
	}
	return err
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
