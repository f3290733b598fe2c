package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/slots/models"
)

// Service сервис чтения слотов с агрегированной занятостью
type Service struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// StreamByRange передает слоты диапазона по одному через fn в порядке
// возрастания времени начала. Слоты не накапливаются в памяти, поэтому
// обработчик может писать ответ потоково.
func (s *Service) StreamByRange(ctx context.Context, from, to time.Time, fn func(*models.SlotListItem) error) error {
	if !to.After(from) {
		return fmt.Errorf("%w: 'to' must be after 'from'", ErrInvalidRange)
	}

	err := s.slotRepo.ForEachInRange(ctx, from, to, func(slot *domain.Slot) error {
		occupancy, err := s.bookingRepo.GetOccupancyBySlot(ctx, slot.ID)
		if err != nil {
			s.logger.Error("StreamByRange: failed to get occupancy for slot %d: %v", slot.ID, err)
			return err
		}

		return fn(toListItem(slot, occupancy))
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return nil
}

func toListItem(slot *domain.Slot, occupancy map[int]int) *models.SlotListItem {
	item := &models.SlotListItem{
		ID:        slot.ID,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Status:    string(slot.StatusFor(occupancy)),
		SubCourts: make([]models.SubCourtInfo, 0, len(slot.SubCourts)),
	}

	for _, court := range slot.SubCourts {
		item.SubCourts = append(item.SubCourts, models.SubCourtInfo{
			Index:     court.Index,
			CourtType: string(court.CourtType),
			Capacity:  court.Capacity,
			Occupied:  occupancy[court.Index],
		})
	}

	return item
}
