package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotExpired возвращается при попытке забронировать прошедший слот
	ErrSlotExpired = errors.New("create_booking: slot has already ended")

	// ErrInvalidSubCourt возвращается, когда корта с таким индексом нет в слоте
	ErrInvalidSubCourt = errors.New("create_booking: invalid sub-court index")

	// ErrGameModeMismatch возвращается, когда заявленный режим игры
	// не совпадает с типом корта
	ErrGameModeMismatch = errors.New("create_booking: game mode does not match court type")

	// ErrAlreadyBooked возвращается, когда у пользователя уже есть активное
	// бронирование на этот слот (на любом корте)
	ErrAlreadyBooked = errors.New("create_booking: user already has a booking for this slot")

	// ErrCourtFull возвращается, когда на корте не осталось мест
	ErrCourtFull = errors.New("create_booking: court is full")

	// ErrTxConflict возвращается, когда транзакция не зафиксировалась
	// из-за конкуренции после всех повторных попыток; запрос можно повторить
	ErrTxConflict = errors.New("create_booking: concurrent booking conflict, try again")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
