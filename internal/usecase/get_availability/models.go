package get_availability

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// BookingInfo краткая информация об активном бронировании корта
type BookingInfo struct {
	GameMode     domain.GameMode
	PlayersCount int
}

// SubCourtAvailability проекция занятости одного корта
type SubCourtAvailability struct {
	Index          int
	CourtType      domain.GameMode
	Capacity       int
	Occupied       int
	Available      int
	CanBookSingles bool
	CanBookDoubles bool
	Bookings       []BookingInfo
}

// Response проекция доступности слота по кортам
type Response struct {
	SlotID    int64
	StartTime time.Time
	EndTime   time.Time
	Status    domain.SlotStatus
	SubCourts []SubCourtAvailability
}
