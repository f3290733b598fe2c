package get_availability

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/slot"
)

// UseCase use case проекции доступности слота.
//
// Проекция является чистым повторяемым чтением без побочных эффектов. Она служит
// только для отображения: решение о допуске всегда заново читает занятость
// в собственной сериализуемой транзакции, поэтому короткий TTL-кеш здесь
// безопасен.
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	cache        *cache.Cache
	cacheTTL     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// При cacheTTL <= 0 кеширование отключено.
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	cacheTTL time.Duration,
	logger Logger,
) *UseCase {
	uc := &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		cacheTTL:     cacheTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}

	if cacheTTL > 0 {
		uc.cache = cache.New(cacheTTL, 2*cacheTTL)
	}

	return uc
}

// Execute строит проекцию доступности слота по кортам
func (uc *UseCase) Execute(ctx context.Context, slotID int64) (*Response, error) {
	if slotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	cacheKey := strconv.FormatInt(slotID, 10)
	if uc.cache != nil {
		if cached, found := uc.cache.Get(cacheKey); found {
			return cached.(*Response), nil
		}
	}

	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("GetAvailability: slot id=%d not found", slotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("GetAvailability: failed to get slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	if slot.IsExpired(uc.timeProvider.Now()) {
		uc.logger.Warn("GetAvailability: slot id=%d has already ended", slotID)
		return nil, ErrSlotExpired
	}

	active, err := uc.bookingRepo.GetActiveBySlot(ctx, slotID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	response := project(slot, active)

	if uc.cache != nil {
		uc.cache.Set(cacheKey, response, cache.DefaultExpiration)
	}

	return response, nil
}

// project группирует активные бронирования по кортам и вычисляет
// занятость, доступность и пригодность для каждого режима игры
func project(slot *domain.Slot, active []*domain.Booking) *Response {
	byCourt := make(map[int][]*domain.Booking)
	occupancy := make(map[int]int)
	for _, b := range active {
		byCourt[b.SubCourtIndex] = append(byCourt[b.SubCourtIndex], b)
		occupancy[b.SubCourtIndex] += b.PlayersCount
	}

	subCourts := make([]SubCourtAvailability, 0, len(slot.SubCourts))
	for _, court := range slot.SubCourts {
		occupied := occupancy[court.Index]
		available := court.Capacity - occupied

		bookings := make([]BookingInfo, 0, len(byCourt[court.Index]))
		for _, b := range byCourt[court.Index] {
			bookings = append(bookings, BookingInfo{
				GameMode:     b.GameMode,
				PlayersCount: b.PlayersCount,
			})
		}

		subCourts = append(subCourts, SubCourtAvailability{
			Index:          court.Index,
			CourtType:      court.CourtType,
			Capacity:       court.Capacity,
			Occupied:       occupied,
			Available:      available,
			CanBookSingles: court.CourtType == domain.ModeSingles && available >= 1,
			CanBookDoubles: court.CourtType == domain.ModeDoubles && available >= 1,
			Bookings:       bookings,
		})
	}

	return &Response{
		SlotID:    slot.ID,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Status:    slot.StatusFor(occupancy),
		SubCourts: subCourts,
	}
}
