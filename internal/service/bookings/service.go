package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

// Service сервис управления бронированиями: отмена и просмотр
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Cancel отменяет бронирование от имени владельца.
// Если бронирование принадлежит другому пользователю, возвращается
// ErrBookingNotFound: чужие ID не должны быть различимы от несуществующих.
func (s *Service) Cancel(ctx context.Context, bookingID int64, userID string) (*models.BookingResponse, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: failed to get booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if b.UserID != userID {
		s.logger.Warn("Cancel: user %s tried to cancel booking %d owned by %s", userID, bookingID, b.UserID)
		return nil, ErrBookingNotFound
	}

	if b.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}

	return s.cancel(ctx, bookingID)
}

// AdminCancel отменяет любое бронирование без проверки владельца
func (s *Service) AdminCancel(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("AdminCancel: failed to get booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if b.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}

	return s.cancel(ctx, bookingID)
}

func (s *Service) cancel(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		// Запись была активна на момент проверки выше, значит её успел
		// отменить конкурентный запрос. Итог тот же: уже отменено.
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, ErrAlreadyCancelled
		}
		s.logger.Error("Cancel: failed to cancel booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	cancelled, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("Cancel: failed to reload booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking %d cancelled", bookingID)

	return models.FromDomainBooking(cancelled), nil
}

// GetUserBookings возвращает активные бронирования пользователя
func (s *Service) GetUserBookings(ctx context.Context, userID string) (*models.BookingListResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: failed to list bookings for user %s: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetAllBookings возвращает все активные бронирования
func (s *Service) GetAllBookings(ctx context.Context) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("GetAllBookings: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}
