package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgSlotNotFound       = "слот не найден"
	msgSlotExpired        = "слот уже завершился"
	msgInvalidSubCourt    = "корт с таким индексом отсутствует в слоте"
	msgGameModeMismatch   = "режим игры не совпадает с типом корта"
	msgAlreadyBooked      = "у вас уже есть активное бронирование на этот слот"
	msgCourtFull          = "на выбранном корте нет свободных мест"
	msgTryAgain           = "не удалось обработать запрос, попробуйте еще раз"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: user_id=%s, slot_id=%d", userID, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotExpired):
			h.logger.Warn("POST /bookings - Slot expired: user_id=%s, slot_id=%d", userID, req.SlotID)
			handlers.RespondBadRequest(w, msgSlotExpired)

		case errors.Is(err, createBooking.ErrInvalidSubCourt):
			h.logger.Warn("POST /bookings - Invalid sub court: user_id=%s, slot_id=%d, sub_court=%d",
				userID, req.SlotID, req.SubCourtIndex)
			handlers.RespondBadRequest(w, msgInvalidSubCourt)

		case errors.Is(err, createBooking.ErrGameModeMismatch):
			h.logger.Warn("POST /bookings - Game mode mismatch: user_id=%s, slot_id=%d, sub_court=%d, mode=%s",
				userID, req.SlotID, req.SubCourtIndex, req.GameMode)
			handlers.RespondBadRequest(w, msgGameModeMismatch)

		case errors.Is(err, createBooking.ErrAlreadyBooked):
			h.logger.Warn("POST /bookings - Already booked: user_id=%s, slot_id=%d", userID, req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyBooked)

		case errors.Is(err, createBooking.ErrCourtFull):
			h.logger.Warn("POST /bookings - Court full: user_id=%s, slot_id=%d, sub_court=%d",
				userID, req.SlotID, req.SubCourtIndex)
			handlers.RespondError(w, http.StatusConflict, msgCourtFull)

		case errors.Is(err, createBooking.ErrTxConflict):
			h.logger.Warn("POST /bookings - Transaction conflict: user_id=%s, slot_id=%d", userID, req.SlotID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTryAgain)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, slot_id=%d, error=%v",
				userID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%s, slot_id=%d",
		result.ID, userID, req.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
