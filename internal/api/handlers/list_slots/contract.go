package list_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/slots/models"
)

type SlotService interface {
	StreamByRange(ctx context.Context, from, to time.Time, fn func(*models.SlotListItem) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
