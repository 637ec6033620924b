package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/render"
)

func newSeriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Inspect and delete recurring series",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every series",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.wire(); err != nil {
				return err
			}
			scope, toasts := app.scope()
			series, err := app.console.Series.List(cmd.Context(), scope)
			if err != nil {
				return writeErr(cmd, err, toasts)
			}
			return writeOut(cmd, app, render.SeriesList(series), toasts)
		},
	})

	var req dto.SeriesDeleteRequest
	del := &cobra.Command{
		Use:   "delete <series-id>",
		Short: "Delete a series, its future instances or a single instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			if err := app.wire(); err != nil {
				return err
			}
			scope, toasts := app.scope()
			if !app.confirmer(cmd).Confirm(cmd.Context(), "Serie wirklich löschen?") {
				return nil
			}
			result, err := app.console.Series.Delete(cmd.Context(), scope, id, req)
			if err != nil {
				return writeErr(cmd, err, toasts)
			}
			return writeOut(cmd, app, result, toasts)
		},
	}
	del.Flags().StringVar(&req.Option, "option", "all", "single, future or all")
	del.Flags().StringVar(&req.FromDate, "from", "", "Date the option applies from (YYYY-MM-DD)")
	cmd.AddCommand(del)

	return cmd
}

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List and apply block templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every template",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.wire(); err != nil {
				return err
			}
			scope, toasts := app.scope()
			templates, err := app.console.Templates.List(cmd.Context(), scope)
			if err != nil {
				return writeErr(cmd, err, toasts)
			}
			return writeOut(cmd, app, render.TemplateList(templates), toasts)
		},
	})

	var input dto.TemplateApplyInput
	var keepDefaults bool
	apply := &cobra.Command{
		Use:   "apply <template-id>",
		Short: "Create the template's blocks on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			if err := app.wire(); err != nil {
				return err
			}
			scope, toasts := app.scope()
			if keepDefaults {
				_, defaults, err := app.console.Templates.ApplicationDefaults(cmd.Context(), scope, id)
				if err != nil {
					return writeErr(cmd, err, toasts)
				}
				if input.Date == "" {
					input.Date = defaults.Date
				}
				if input.Details == "" {
					input.Details = defaults.Details
				}
				if input.Description == "" {
					input.Description = defaults.Description
				}
			}
			result, err := app.console.Templates.Apply(cmd.Context(), scope, id, input)
			if err != nil {
				return writeErr(cmd, err, toasts)
			}
			return writeOut(cmd, app, result, toasts)
		},
	}
	apply.Flags().StringVar(&input.Date, "date", "", "Date to apply the template on (YYYY-MM-DD)")
	apply.Flags().StringVar(&input.Details, "details", "", "Details sent with the blocks")
	apply.Flags().StringVar(&input.Description, "description", "", "Description sent with the blocks")
	apply.Flags().BoolVar(&keepDefaults, "defaults", true, "Fill blank values from the template, date from today")
	cmd.AddCommand(apply)

	return cmd
}

func newReasonsCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "reasons",
		Short: "List block reasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.wire(); err != nil {
				return err
			}
			scope, toasts := app.scope()
			reasons, err := app.console.References.Reasons(cmd.Context(), scope, !all)
			if err != nil {
				return writeErr(cmd, err, toasts)
			}
			return writeOut(cmd, app, reasons, toasts)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include inactive reasons")
	return cmd
}
