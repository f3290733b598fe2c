package domain

import "time"

// Booking represents one admitted claim on a single player's place
// on one sub-court of one slot
type Booking struct {
	ID            int64
	UserID        string // opaque requester identity from the identity service
	SlotID        int64
	SubCourtIndex int
	GameMode      GameMode
	PlayersCount  int // occupancy units contributed, fixed at PlayersPerBooking

	CancelledAt *time.Time // nil while the booking is active

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true while the booking has not been cancelled
func (b *Booking) IsActive() bool {
	return b.CancelledAt == nil
}

// IsCancelled returns true once the cancellation instant has been set.
// Cancellation is monotonic and never reversed.
func (b *Booking) IsCancelled() bool {
	return b.CancelledAt != nil
}
