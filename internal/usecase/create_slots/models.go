package create_slots

import "time"

// Request модель запроса на пакетное создание слотов
type Request struct {
	StartTimes []time.Time // Моменты начала создаваемых слотов
}

// Response результат пакетного создания.
// Операция успешна и при частичном создании: дубликаты и единичные сбои
// возвращаются в ответе, но не считаются ошибкой, пока создан хотя бы
// один слот.
type Response struct {
	CreatedCount int      // Число созданных слотов
	FailedCount  int      // Число слотов, не созданных из-за ошибок хранилища
	Duplicates   []string // Времена уже существующих слотов в формате HH:MM
}
