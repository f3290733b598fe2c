package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
)

// UseCase use case допуска бронирования: атомарно проверяет все условия
// и создаёт бронирование, не превышая вместимость корта
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет допуск бронирования.
// Все проверки и запись выполняются в одной сериализуемой транзакции:
// два конкурентных допуска на один корт не могут оба пройти проверку
// вместимости по устаревшему снимку, один из них увидит эффект другого
// и будет отклонён.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, slot=%d, court=%d, mode=%s",
		req.UserID, req.SlotID, req.SubCourtIndex, req.GameMode)

	// 1. Валидация входных данных (до обращения к хранилищу)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking
	var slot *domain.Slot

	// 3. Все проверки и запись выполняются как одна атомарная единица работы
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Слот должен существовать
		s, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}
		slot = s

		// 3.2. Слот не должен быть прошедшим
		if slot.IsExpired(now) {
			return ErrSlotExpired
		}

		// 3.3. Корт с таким индексом должен существовать
		subCourt, ok := slot.SubCourt(req.SubCourtIndex)
		if !ok {
			return ErrInvalidSubCourt
		}

		// 3.4. Заявленный режим должен совпадать с типом корта
		if subCourt.CourtType != req.GameMode {
			return ErrGameModeMismatch
		}

		// 3.5. Не более одного активного бронирования пользователя на слот,
		// по любому из кортов
		hasBooking, err := uc.bookingRepo.HasActiveBySlotAndUser(txCtx, req.SlotID, req.UserID)
		if err != nil {
			return fmt.Errorf("%w: failed to check existing booking: %w", ErrInternal, err)
		}
		if hasBooking {
			return ErrAlreadyBooked
		}

		// 3.6. Проверка вместимости: сумма занятых мест + новое место <= capacity
		active, err := uc.bookingRepo.GetActiveBySlotAndCourt(txCtx, req.SlotID, req.SubCourtIndex)
		if err != nil {
			return fmt.Errorf("%w: failed to get court bookings: %w", ErrInternal, err)
		}

		occupied := 0
		for _, b := range active {
			occupied += b.PlayersCount
		}

		if occupied+domain.PlayersPerBooking > subCourt.Capacity {
			uc.logger.Warn("CreateBooking: court full, slot=%d, court=%d, %d/%d places taken",
				req.SlotID, req.SubCourtIndex, occupied, subCourt.Capacity)
			return ErrCourtFull
		}

		// 3.7. Создаем бронирование на одно место
		booking := &domain.Booking{
			UserID:        req.UserID,
			SlotID:        req.SlotID,
			SubCourtIndex: req.SubCourtIndex,
			GameMode:      req.GameMode,
			PlayersCount:  domain.PlayersPerBooking,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Исчерпанные повторы сериализуемой транзакции считаем временной ошибкой,
		// вызывающая сторона может повторить запрос
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization conflict for user=%s, slot=%d: %v",
				req.UserID, req.SlotID, err)
			return nil, ErrTxConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, user=%s, slot=%d, court=%d",
		result.ID, req.UserID, req.SlotID, req.SubCourtIndex)

	return &Response{
		ID:            result.ID,
		UserID:        result.UserID,
		SlotID:        result.SlotID,
		SubCourtIndex: result.SubCourtIndex,
		GameMode:      result.GameMode,
		PlayersCount:  result.PlayersCount,
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		CreatedAt:     result.CreatedAt,
	}, nil
}
