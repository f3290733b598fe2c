package create_slots

import "errors"

var (
	// ErrAllDuplicates возвращается, когда все запрошенные моменты начала
	// уже заняты существующими слотами (ошибка вызывающей стороны)
	ErrAllDuplicates = errors.New("create_slots: all requested start times already exist")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_slots: invalid input data")

	// ErrInternal возвращается, когда не удалось создать ни одного слота
	// по внутренним причинам
	ErrInternal = errors.New("create_slots: internal error")
)
