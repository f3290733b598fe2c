package list_slots

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/slots"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/slots/models"
)

const (
	msgInvalidFrom  = "некорректный параметр from, ожидается RFC3339"
	msgInvalidTo    = "некорректный параметр to, ожидается RFC3339"
	msgInvalidRange = "некорректный диапазон: to должен быть позже from"

	// Диапазон по умолчанию, если границы не переданы
	defaultRange = 7 * 24 * time.Hour
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?from=&to=
//
// Слоты пишутся в ответ потоково, JSON массивом, по мере чтения из
// базы. Статус 200 отправляется с первым элементом, поэтому ошибка
// после начала записи уже не может его изменить: поток обрывается без
// закрывающей скобки, и тело остаётся усечённым невалидным JSON.
// Клиент обязан валидировать тело целиком и считать обрыв ошибкой,
// а не коротким списком. До первой записи ошибки отдаются обычными
// статусами 400 и 500.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from := time.Now()
	if fromStr := query.Get("from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid 'from' parameter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = parsed
	}

	to := from.Add(defaultRange)
	if toStr := query.Get("to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid 'to' parameter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTo)
			return
		}
		to = parsed
	}

	w.Header().Set("Content-Type", "application/json")

	count := 0
	started := false

	err := h.service.StreamByRange(r.Context(), from, to, func(item *models.SlotListItem) error {
		data, err := json.Marshal(item)
		if err != nil {
			return err
		}

		if !started {
			if _, err := w.Write([]byte("[")); err != nil {
				return err
			}
			started = true
		} else {
			if _, err := w.Write([]byte(",")); err != nil {
				return err
			}
		}

		if _, err := w.Write(data); err != nil {
			return err
		}

		count++
		return nil
	})
	if err != nil {
		if errors.Is(err, slots.ErrInvalidRange) {
			h.logger.Warn("GET /slots - Invalid range: from=%s, to=%s", from, to)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}

		h.logger.Error("GET /slots - Failed to stream slots: error=%v", err)
		if !started {
			handlers.RespondInternalError(w)
		}
		return
	}

	if !started {
		_, _ = w.Write([]byte("["))
	}
	_, _ = w.Write([]byte("]"))

	h.logger.Info("GET /slots - Slots streamed successfully: count=%d", count)
}
