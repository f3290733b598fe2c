package sweeper

import (
	"context"
	"time"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListExpiredIDs(ctx context.Context, now time.Time) ([]int64, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	DeleteBySlotIDs(ctx context.Context, slotIDs []int64) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Sweeper периодически удаляет истекшие слоты вместе с их бронированиями
type Sweeper struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	timeProv    TimeProvider
	logger      Logger
	interval    time.Duration
}

// New создает новый экземпляр свипера
func New(slotRepo SlotRepository, bookingRepo BookingRepository, timeProv TimeProvider, logger Logger, interval time.Duration) *Sweeper {
	return &Sweeper{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		timeProv:    timeProv,
		logger:      logger,
		interval:    interval,
	}
}

// Start запускает цикл очистки: один проход сразу, далее по тикеру
// до отмены контекста.
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Sweeper: started with interval %s", s.interval)

	s.runSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper: stopped")
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *Sweeper) runSweep(ctx context.Context) {
	if err := s.Sweep(ctx); err != nil {
		s.logger.Error("Sweeper: sweep failed: %v", err)
	}
}

// Sweep выполняет один проход очистки. Проход идемпотентен: повторный
// запуск на том же состоянии ничего не удаляет. Бронирования удаляются
// раньше слотов, чтобы сбой между шагами не оставил бронирований,
// ссылающихся на удаленный слот.
func (s *Sweeper) Sweep(ctx context.Context) error {
	now := s.timeProv.Now()

	slotIDs, err := s.slotRepo.ListExpiredIDs(ctx, now)
	if err != nil {
		return err
	}
	if len(slotIDs) == 0 {
		return nil
	}

	deletedBookings, err := s.bookingRepo.DeleteBySlotIDs(ctx, slotIDs)
	if err != nil {
		return err
	}

	deletedSlots, err := s.slotRepo.DeleteByIDs(ctx, slotIDs)
	if err != nil {
		return err
	}

	s.logger.Info("Sweeper: removed %d expired slots and %d bookings", deletedSlots, deletedBookings)

	return nil
}
