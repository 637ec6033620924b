package models

// Slot statuses reported by the availability grid.
const (
	SlotAvailable = "available"
	SlotReserved  = "reserved"
	SlotBlocked   = "blocked"
)

// Reservation is the booking payload sent to the backend.
type Reservation struct {
	CourtID     int    `json:"court_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	BookedForID string `json:"booked_for_id"`
}

// Slot is one cell of the availability grid.
type Slot struct {
	Status  string                 `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// CourtAvailability is one row of the availability grid.
type CourtAvailability struct {
	CourtNumber int    `json:"court_number"`
	Slots       []Slot `json:"slots"`
}

// Availability is the availability grid for one date.
type Availability struct {
	Grid []CourtAvailability `json:"grid"`
}

// Favourite is a member the current member frequently books with.
type Favourite struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
