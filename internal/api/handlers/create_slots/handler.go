package create_slots

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	createSlots "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTimes  = "некорректный формат времени начала, ожидается RFC3339"
	msgEmptyStartTimes    = "список startTimes не должен быть пустым"
	msgAllDuplicates      = "слоты на указанные времена уже существуют: %s"
)

type Handler struct {
	useCase CreateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase CreateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/slots - Failed to parse start times: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTimes)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSlots.ErrInvalidInput):
			h.logger.Warn("POST /admin/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgEmptyStartTimes)

		case errors.Is(err, createSlots.ErrAllDuplicates):
			h.logger.Warn("POST /admin/slots - All start times are duplicates: count=%d", len(result.Duplicates))
			handlers.RespondBadRequest(w, fmt.Sprintf(msgAllDuplicates, strings.Join(result.Duplicates, ", ")))

		default:
			h.logger.Error("POST /admin/slots - Failed to create slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/slots - Slots created successfully: created=%d, duplicates=%d",
		result.CreatedCount, len(result.Duplicates))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
