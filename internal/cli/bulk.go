package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
	"github.com/tennisclub/court-admin/internal/render"
)

func newBulkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Delete or edit several blocks at once",
	}
	cmd.AddCommand(newBulkDeleteCmd(app))
	cmd.AddCommand(newBulkEditCmd(app))
	return cmd
}

// selectIDs loads the upcoming blocks and selects the given ids. Ids that
// are not in the upcoming list are reported and skipped.
func (app *App) selectIDs(cmd *cobra.Command, raw string) error {
	ids, err := parseIDs(raw)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("--ids is required")
	}
	scope, toasts := app.scope()
	blocks, err := app.console.Loader.Load(cmd.Context(), scope, models.BlockFilter{})
	if err != nil {
		return writeErr(cmd, err, toasts)
	}
	byID := make(map[int]models.Block, len(blocks))
	for _, b := range blocks {
		byID[b.ID] = b
	}
	selection := make(models.Selection, 0, len(ids))
	for _, id := range ids {
		b, ok := byID[id]
		if !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: block %d is not upcoming, skipped\n", id)
			continue
		}
		selection = append(selection, models.SelectedBlock{ID: b.ID, BatchID: b.BatchID})
	}
	app.state.SetSelectedBlocks(selection)
	return nil
}

func newBulkDeleteCmd(app *App) *cobra.Command {
	var ids string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete every batch touched by the given blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.wire(); err != nil {
				return err
			}
			if err := app.selectIDs(cmd, ids); err != nil {
				return err
			}
			scope, toasts := app.scope()
			previews, err := app.console.BulkDelete.Preview(scope)
			if err != nil {
				return writeErr(cmd, err, toasts)
			}
			for _, line := range render.BulkDeletePreview(app.state.SelectedBlocks()) {
				fmt.Fprintln(cmd.ErrOrStderr(), line)
			}
			prompt := fmt.Sprintf("%d Batch(es) löschen?", len(previews))
			if !app.confirmer(cmd).Confirm(cmd.Context(), prompt) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Abgebrochen")
				return nil
			}
			result, err := app.console.BulkDelete.Execute(cmd.Context(), scope)
			if err != nil {
				return writeErr(cmd, err, toasts)
			}
			return writeOut(cmd, app, result, toasts)
		},
	}
	cmd.Flags().StringVar(&ids, "ids", "", "Comma separated block ids")
	return cmd
}

func newBulkEditCmd(app *App) *cobra.Command {
	var ids string
	var input dto.BulkEditInput

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Apply the given fields to every selected block",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.wire(); err != nil {
				return err
			}
			if err := app.selectIDs(cmd, ids); err != nil {
				return err
			}
			scope, toasts := app.scope()
			result, err := app.console.BulkEdit.Execute(cmd.Context(), scope, input)
			if err != nil {
				return writeErr(cmd, err, toasts)
			}
			return writeOut(cmd, app, result, toasts)
		},
	}
	cmd.Flags().StringVar(&ids, "ids", "", "Comma separated block ids")
	cmd.Flags().IntVar(&input.ReasonID, "reason", 0, "New reason id")
	cmd.Flags().StringVar(&input.StartTime, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&input.EndTime, "end", "", "New end time (HH:MM)")
	cmd.Flags().StringVar(&input.SubReason, "details", "", "New details")
	cmd.Flags().StringVar(&input.Description, "description", "", "New description")
	cmd.Flags().BoolVar(&input.ClearSubReason, "clear-details", false, "Clear the details")
	cmd.Flags().BoolVar(&input.ClearDescription, "clear-description", false, "Clear the description")
	return cmd
}
