package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Request модель запроса на бронирование одного места на корте
type Request struct {
	UserID        string          // Идентификатор пользователя из identity-сервиса
	SlotID        int64           // ID слота
	SubCourtIndex int             // Индекс корта внутри слота
	GameMode      domain.GameMode // Заявленный режим игры (singles/doubles)
}

// Response модель ответа с подтверждением бронирования
type Response struct {
	ID            int64           // ID созданного бронирования
	UserID        string          // ID пользователя
	SlotID        int64           // ID слота
	SubCourtIndex int             // Индекс корта
	GameMode      domain.GameMode // Режим игры
	PlayersCount  int             // Занятых мест (всегда 1)

	StartTime time.Time // Начало слота
	EndTime   time.Time // Окончание слота

	CreatedAt time.Time // Время создания
}
