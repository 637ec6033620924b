package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tennisclub/court-admin/internal/models"
	"github.com/tennisclub/court-admin/internal/render"
)

func newBlocksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List and delete block batches",
	}
	cmd.AddCommand(newBlocksListCmd(app))
	cmd.AddCommand(newBlocksDeleteCmd(app))
	return cmd
}

func newBlocksListCmd(app *App) *cobra.Command {
	var filter models.BlockFilter
	var courts, reasons string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming blocks grouped by batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.wire(); err != nil {
				return err
			}
			var err error
			if filter.CourtIDs, err = parseIDs(courts); err != nil {
				return err
			}
			if filter.ReasonIDs, err = parseIDs(reasons); err != nil {
				return err
			}
			scope, toasts := app.scope()
			blocks, err := app.console.Loader.Load(cmd.Context(), scope, filter)
			if err != nil {
				return writeErr(cmd, err, toasts)
			}
			return writeOut(cmd, app, render.BlockRows(blocks), toasts)
		},
	}
	cmd.Flags().StringVar(&filter.DateRangeStart, "from", "", "First date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&filter.DateRangeEnd, "to", "", "Last date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&courts, "courts", "", "Comma separated court ids")
	cmd.Flags().StringVar(&reasons, "reasons", "", "Comma separated reason ids")
	return cmd
}

func newBlocksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <batch-id>",
		Short: "Delete one batch after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.wire(); err != nil {
				return err
			}
			scope, toasts := app.scope()
			result, err := app.console.BulkDelete.DeleteBatch(cmd.Context(), scope, args[0], app.confirmer(cmd))
			if err != nil {
				return writeErr(cmd, err, toasts)
			}
			return writeOut(cmd, app, result, toasts)
		},
	}
}

func parseIDs(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
