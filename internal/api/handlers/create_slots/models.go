package create_slots

import (
	"fmt"
	"time"

	createSlots "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_slots"
)

// CreateSlotsRequest HTTP request model
type CreateSlotsRequest struct {
	StartTimes []string `json:"startTimes"` // RFC3339
}

// CreateSlotsResponse HTTP response model
type CreateSlotsResponse struct {
	CreatedCount int      `json:"createdCount"`
	FailedCount  int      `json:"failedCount"`
	Duplicates   []string `json:"duplicates"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSlotsRequest) ToUseCaseRequest() (*createSlots.Request, error) {
	startTimes := make([]time.Time, 0, len(r.StartTimes))

	for _, raw := range r.StartTimes {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid start time %q: %w", raw, err)
		}
		startTimes = append(startTimes, parsed)
	}

	return &createSlots.Request{StartTimes: startTimes}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSlots.Response) *CreateSlotsResponse {
	duplicates := resp.Duplicates
	if duplicates == nil {
		duplicates = []string{}
	}

	return &CreateSlotsResponse{
		CreatedCount: resp.CreatedCount,
		FailedCount:  resp.FailedCount,
		Duplicates:   duplicates,
	}
}
