package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено.
	// Несовпадение владельца намеренно неотличимо от отсутствия
	// бронирования, чтобы не раскрывать существование чужих ID.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
