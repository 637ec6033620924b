package cli

import (
	"github.com/spf13/cobra"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/service"
	"github.com/tennisclub/court-admin/pkg/storage"
)

type exportOutput struct {
	*service.ExportResult
	Path string `json:"path"`
}

func newExportCmd(app *App) *cobra.Command {
	var req dto.ExportRequest
	var courts, reasons, dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the block list to a CSV or PDF file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.wire(); err != nil {
				return err
			}
			var err error
			if req.CourtIDs, err = parseIDs(courts); err != nil {
				return err
			}
			if req.ReasonIDs, err = parseIDs(reasons); err != nil {
				return err
			}
			if dir == "" {
				dir = app.cfg.Exports.StorageDir
			}
			files, err := storage.NewExportStore(dir)
			if err != nil {
				return err
			}
			signer := storage.NewSignedURLSigner(app.cfg.Exports.SignedURLSecret, app.cfg.Exports.SignedURLTTL)
			exports := service.NewExportService(app.backend.Blocks(), app.console.Loader, files, signer,
				service.ExportConfig{APIPrefix: app.cfg.APIPrefix}, nil, nil, nil)

			scope, toasts := app.scope()
			result, err := exports.Generate(cmd.Context(), scope, req)
			if err != nil {
				return writeErr(cmd, err, toasts)
			}
			return writeOut(cmd, app, exportOutput{ExportResult: result, Path: files.Path(result.RelativePath)}, toasts)
		},
	}
	cmd.Flags().StringVar(&req.Format, "format", "csv", "csv or pdf")
	cmd.Flags().StringVar(&req.DateRangeStart, "from", "", "First date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.DateRangeEnd, "to", "", "Last date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&courts, "courts", "", "Comma separated court ids")
	cmd.Flags().StringVar(&reasons, "reasons", "", "Comma separated reason ids")
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (defaults to EXPORTS_STORAGE_DIR)")
	return cmd
}
