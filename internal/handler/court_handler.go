package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tennisclub/court-admin/internal/client"
	"github.com/tennisclub/court-admin/internal/models"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
	"github.com/tennisclub/court-admin/pkg/response"
)

type courtClient interface {
	Availability(ctx context.Context, date string) (client.Result[models.Availability], error)
	CreateReservation(ctx context.Context, req models.Reservation) (client.Result[client.ReservationResponse], error)
	CancelReservation(ctx context.Context, id int) (client.Result[client.ReservationResponse], error)
	Favourites(ctx context.Context, memberID string) (client.Result[[]models.Favourite], error)
}

// CourtHandler passes member-facing court calls through to the backend.
type CourtHandler struct {
	courts courtClient
}

// NewCourtHandler builds a new handler.
func NewCourtHandler(courts courtClient) *CourtHandler {
	return &CourtHandler{courts: courts}
}

// Availability godoc
// @Summary Availability grid of a date
// @Tags Courts
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /courts/availability [get]
func (h *CourtHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date required"))
		return
	}
	res, err := h.courts.Availability(c.Request.Context(), date)
	passThrough(c, http.StatusOK, res, err, "Fehler beim Laden der Verfügbarkeit")
}

// CreateReservation godoc
// @Summary Book a court slot
// @Tags Courts
// @Accept json
// @Produce json
// @Param payload body models.Reservation true "Reservation"
// @Success 201 {object} response.Envelope
// @Router /courts/reservations [post]
func (h *CourtHandler) CreateReservation(c *gin.Context) {
	var req models.Reservation
	if !bind(c, &req) {
		return
	}
	res, err := h.courts.CreateReservation(c.Request.Context(), req)
	passThrough(c, http.StatusCreated, res, err, "Fehler beim Erstellen der Buchung")
}

// CancelReservation godoc
// @Summary Cancel a reservation
// @Tags Courts
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Envelope
// @Router /courts/reservations/{id} [delete]
func (h *CourtHandler) CancelReservation(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	res, err := h.courts.CancelReservation(c.Request.Context(), id)
	passThrough(c, http.StatusOK, res, err, "Fehler beim Stornieren der Buchung")
}

// Favourites godoc
// @Summary Favourite partners of a member
// @Tags Courts
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Envelope
// @Router /members/{id}/favourites [get]
func (h *CourtHandler) Favourites(c *gin.Context) {
	res, err := h.courts.Favourites(c.Request.Context(), c.Param("id"))
	passThrough(c, http.StatusOK, res, err, "Fehler beim Laden der Favoriten")
}

func passThrough[T any](c *gin.Context, status int, res client.Result[T], err error, fallback string) {
	if err != nil {
		response.Error(c, err)
		return
	}
	if !res.Success {
		response.Error(c, appErrors.Clone(appErrors.ErrUpstreamRejected, res.Message(fallback)))
		return
	}
	response.JSON(c, status, res.Data)
}
