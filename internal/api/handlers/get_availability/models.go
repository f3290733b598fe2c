package get_availability

import (
	"time"

	getAvailability "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_availability"
)

// BookingInfo HTTP модель активного бронирования корта
type BookingInfo struct {
	GameMode     string `json:"gameMode"`
	PlayersCount int    `json:"playersCount"`
}

// SubCourtAvailability HTTP модель занятости корта
type SubCourtAvailability struct {
	Index          int           `json:"index"`
	CourtType      string        `json:"courtType"`
	Capacity       int           `json:"capacity"`
	Occupied       int           `json:"occupied"`
	Available      int           `json:"available"`
	CanBookSingles bool          `json:"canBookSingles"`
	CanBookDoubles bool          `json:"canBookDoubles"`
	Bookings       []BookingInfo `json:"bookings"`
}

// AvailabilityResponse HTTP модель доступности слота
type AvailabilityResponse struct {
	SlotID    int64                  `json:"slotId"`
	StartTime string                 `json:"startTime"`
	EndTime   string                 `json:"endTime"`
	Status    string                 `json:"status"`
	SubCourts []SubCourtAvailability `json:"subCourts"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		SlotID:    resp.SlotID,
		StartTime: resp.StartTime.Format(time.RFC3339),
		EndTime:   resp.EndTime.Format(time.RFC3339),
		Status:    string(resp.Status),
		SubCourts: make([]SubCourtAvailability, 0, len(resp.SubCourts)),
	}

	for _, court := range resp.SubCourts {
		courtOut := SubCourtAvailability{
			Index:          court.Index,
			CourtType:      string(court.CourtType),
			Capacity:       court.Capacity,
			Occupied:       court.Occupied,
			Available:      court.Available,
			CanBookSingles: court.CanBookSingles,
			CanBookDoubles: court.CanBookDoubles,
			Bookings:       make([]BookingInfo, 0, len(court.Bookings)),
		}

		for _, booking := range court.Bookings {
			courtOut.Bookings = append(courtOut.Bookings, BookingInfo{
				GameMode:     string(booking.GameMode),
				PlayersCount: booking.PlayersCount,
			})
		}

		out.SubCourts = append(out.SubCourts, courtOut)
	}

	return out
}
