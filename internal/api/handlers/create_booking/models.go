package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID        int64  `json:"slotId"`
	SubCourtIndex int    `json:"subCourtIndex"`
	GameMode      string `json:"gameMode"` // "singles" | "doubles"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64  `json:"id"`
	UserID        string `json:"userId"`
	SlotID        int64  `json:"slotId"`
	SubCourtIndex int    `json:"subCourtIndex"`
	GameMode      string `json:"gameMode"`
	PlayersCount  int    `json:"playersCount"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	CreatedAt     string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) *createBooking.Request {
	return &createBooking.Request{
		UserID:        userID,
		SlotID:        r.SlotID,
		SubCourtIndex: r.SubCourtIndex,
		GameMode:      domain.GameMode(r.GameMode),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		SlotID:        resp.SlotID,
		SubCourtIndex: resp.SubCourtIndex,
		GameMode:      string(resp.GameMode),
		PlayersCount:  resp.PlayersCount,
		StartTime:     resp.StartTime.Format(time.RFC3339),
		EndTime:       resp.EndTime.Format(time.RFC3339),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
