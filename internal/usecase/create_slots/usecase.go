package create_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/slot"
)

// UseCase use case пакетного создания слотов с каноническим набором кортов
type UseCase struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Execute создает слоты для каждого запрошенного момента начала.
// Дубликаты (в том числе проигранные гонки с конкурентным создателем)
// и единичные ошибки хранилища не прерывают создание остальных слотов.
// Если не создано ни одного слота: при наличии ошибок хранилища
// возвращается ErrInternal, иначе ErrAllDuplicates со списком в Response.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if len(req.StartTimes) == 0 {
		return nil, fmt.Errorf("%w: startTimes must not be empty", ErrInvalidInput)
	}

	uc.logger.Info("CreateSlots: requested %d start times", len(req.StartTimes))

	created := 0
	failed := 0
	duplicates := make([]string, 0)
	seen := make(map[int64]struct{}, len(req.StartTimes))

	for _, startTime := range req.StartTimes {
		// Повторы внутри одного запроса считаем дубликатами
		key := startTime.Unix()
		if _, ok := seen[key]; ok {
			duplicates = append(duplicates, startTime.Format(domain.SlotTimeFormat))
			continue
		}
		seen[key] = struct{}{}

		exists, err := uc.slotRepo.ExistsByStartTime(ctx, startTime)
		if err != nil {
			uc.logger.Error("CreateSlots: failed to check start time %s: %v",
				startTime.Format(domain.DateTimeFormat), err)
			failed++
			continue
		}
		if exists {
			duplicates = append(duplicates, startTime.Format(domain.SlotTimeFormat))
			continue
		}

		_, err = uc.slotRepo.Create(ctx, domain.NewSlot(startTime))
		if err != nil {
			// Гонка с конкурентным создателем того же момента начала:
			// слот уже есть, считаем дубликатом
			if errors.Is(err, slotRepo.ErrDuplicateStartTime) {
				duplicates = append(duplicates, startTime.Format(domain.SlotTimeFormat))
				continue
			}
			// Ошибка одного слота не прерывает создание остальных
			uc.logger.Error("CreateSlots: failed to create slot for %s: %v",
				startTime.Format(domain.DateTimeFormat), err)
			failed++
			continue
		}

		created++
	}

	if created == 0 {
		// Ни один слот не создан. Ошибки хранилища весомее дубликатов:
		// ответ про "всё уже существует" скрыл бы реальный сбой
		if failed > 0 {
			return nil, fmt.Errorf("%w: failed to create any of %d slots (%d failures, %d duplicates)",
				ErrInternal, len(req.StartTimes), failed, len(duplicates))
		}
		uc.logger.Warn("CreateSlots: all %d start times are duplicates", len(duplicates))
		return &Response{CreatedCount: 0, Duplicates: duplicates}, ErrAllDuplicates
	}

	uc.logger.Info("CreateSlots: created %d slots, %d duplicates, %d failures",
		created, len(duplicates), failed)

	return &Response{
		CreatedCount: created,
		FailedCount:  failed,
		Duplicates:   duplicates,
	}, nil
}
