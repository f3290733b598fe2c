package domain

// Slot template constants
const (
	SlotDurationMinutes = 45

	SinglesCourts   = 3
	DoublesCourts   = 3
	SinglesCapacity = 2
	DoublesCapacity = 4
)

// PlayersPerBooking количество игроков в одном бронировании.
// Каждое бронирование занимает ровно одно место: корт для doubles
// заполняется четырьмя независимыми бронированиями.
const PlayersPerBooking = 1

// Time format constants
const (
	SlotTimeFormat = "15:04"            // HH:MM, для отображения дубликатов
	DateTimeFormat = "2006-01-02T15:04" // для человекочитаемых логов
)

// AdminRole значение роли привилегированного пользователя из identity-сервиса
const AdminRole = "admin"
