package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tennisclub/court-admin/internal/models"
)

// ReservationResponse is the backend answer to reservation calls.
type ReservationResponse struct {
	ID      int    `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

type favouriteList struct {
	Favourites []models.Favourite `json:"favourites"`
}

// CourtsAPI wraps the reservation, availability and favourites endpoints.
type CourtsAPI struct {
	c *Client
}

// Courts returns the court endpoint wrapper.
func (c *Client) Courts() *CourtsAPI {
	return &CourtsAPI{c: c}
}

// Availability loads the slot grid for a date (YYYY-MM-DD).
func (a *CourtsAPI) Availability(ctx context.Context, date string) (Result[models.Availability], error) {
	query := url.Values{}
	query.Set("date", date)
	return call[models.Availability](ctx, a.c, "courts.availability", http.MethodGet, "/courts/availability", query, nil)
}

// CreateReservation books a slot.
func (a *CourtsAPI) CreateReservation(ctx context.Context, req models.Reservation) (Result[ReservationResponse], error) {
	return call[ReservationResponse](ctx, a.c, "reservations.create", http.MethodPost, "/reservations/", nil, req)
}

// CancelReservation cancels a booking.
func (a *CourtsAPI) CancelReservation(ctx context.Context, id int) (Result[ReservationResponse], error) {
	return call[ReservationResponse](ctx, a.c, "reservations.cancel", http.MethodDelete, "/reservations/"+strconv.Itoa(id), nil, nil)
}

// Favourites loads the favourite partners of a member.
func (a *CourtsAPI) Favourites(ctx context.Context, memberID string) (Result[[]models.Favourite], error) {
	res, err := call[favouriteList](ctx, a.c, "members.favourites", http.MethodGet, "/members/"+url.PathEscape(memberID)+"/favourites", nil, nil)
	if err != nil {
		return Result[[]models.Favourite]{}, err
	}
	return mapResult(res, func(l favouriteList) []models.Favourite { return l.Favourites }), nil
}
