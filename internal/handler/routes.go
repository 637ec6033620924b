package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tennisclub/court-admin/internal/middleware"
)

// Handlers groups every console handler for route registration. Exports may
// be nil when exports are disabled.
type Handlers struct {
	Blocks     *BlockHandler
	Bulk       *BulkHandler
	Series     *SeriesHandler
	Templates  *TemplateHandler
	References *ReferenceHandler
	Courts     *CourtHandler
	Exports    *ExportHandler
}

// RegisterRoutes mounts the console API. public carries routes that
// authorise themselves (signed export links); api is expected to run the
// session and upstream token middleware. Block routes admit teamsters, series
// and templates are administrator only.
func RegisterRoutes(public, api *gin.RouterGroup, h Handlers) {
	if h.Exports != nil {
		public.GET("/exports/:token", h.Exports.Download)
	}

	blocks := api.Group("", middleware.TeamsterOrAdmin())
	blocks.GET("/blocks", h.Blocks.List)
	blocks.GET("/blocks/form", h.Blocks.FormDefaults)
	blocks.POST("/blocks/form/validate", h.Blocks.Validate)
	blocks.POST("/blocks/form/mode", h.Blocks.ResolveMode)
	blocks.POST("/blocks/form/submit", h.Blocks.Submit)
	blocks.GET("/blocks/courts", h.Blocks.AllCourts)
	blocks.GET("/blocks/batches/:batchId", h.Blocks.Edit)
	blocks.DELETE("/blocks/batches/:batchId", h.Blocks.DeleteBatch)

	blocks.GET("/blocks/selection", h.Bulk.Selection)
	blocks.PUT("/blocks/selection", h.Bulk.Select)
	blocks.DELETE("/blocks/selection", h.Bulk.ClearSelection)
	blocks.GET("/blocks/bulk-delete", h.Bulk.DeletePreview)
	blocks.POST("/blocks/bulk-delete", h.Bulk.Delete)
	blocks.POST("/blocks/bulk-edit", h.Bulk.Edit)

	blocks.GET("/reasons", h.References.Reasons)
	if h.Exports != nil {
		blocks.POST("/exports", h.Exports.Create)
	}

	admin := api.Group("", middleware.AdminOnly())
	admin.GET("/series", h.Series.List)
	admin.POST("/series", h.Series.Create)
	admin.GET("/series/form", h.Series.FormDefaults)
	admin.POST("/series/form/validate", h.Series.Validate)
	admin.PUT("/series/:id", h.Series.Update)
	admin.PUT("/series/:id/future", h.Series.UpdateFuture)
	admin.DELETE("/series/:id", h.Series.Delete)

	admin.GET("/templates", h.Templates.List)
	admin.POST("/templates", h.Templates.Create)
	admin.POST("/templates/form/validate", h.Templates.Validate)
	admin.DELETE("/templates/:id", h.Templates.Delete)
	admin.GET("/templates/:id/apply", h.Templates.ApplicationDefaults)
	admin.POST("/templates/:id/apply", h.Templates.Apply)

	members := api.Group("", middleware.RequireRoles(middleware.RoleAdministrator, middleware.RoleTeamster, middleware.RoleMember))
	members.GET("/courts/availability", h.Courts.Availability)
	members.POST("/courts/reservations", h.Courts.CreateReservation)
	members.DELETE("/courts/reservations/:id", h.Courts.CancelReservation)
	members.GET("/members/:id/favourites", h.Courts.Favourites)
}
