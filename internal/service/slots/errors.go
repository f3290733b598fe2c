package slots

import "errors"

var (
	// ErrInvalidRange возвращается при некорректном временном диапазоне
	ErrInvalidRange = errors.New("invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
