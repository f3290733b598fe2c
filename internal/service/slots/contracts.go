package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ForEachInRange(ctx context.Context, from, to time.Time, fn func(*domain.Slot) error) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetOccupancyBySlot(ctx context.Context, slotID int64) (map[int]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
