package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error

	gotReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc *fakeUseCase, body string, userID string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)

	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:            42,
		UserID:        "user-1",
		SlotID:        1,
		SubCourtIndex: 0,
		GameMode:      domain.ModeSingles,
		PlayersCount:  1,
		StartTime:     start,
		EndTime:       start.Add(45 * time.Minute),
		CreatedAt:     start.Add(-time.Hour),
	}}

	rec := doRequest(t, uc, `{"slotId":1,"subCourtIndex":0,"gameMode":"singles"}`, "user-1")

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "singles", resp.GameMode)

	// Пользователь берется из заголовка, а не из тела
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, "user-1", uc.gotReq.UserID)
}

func TestHandle_MissingUserHeader(t *testing.T) {
	uc := &fakeUseCase{}

	rec := doRequest(t, uc, `{"slotId":1,"subCourtIndex":0,"gameMode":"singles"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, `{not json`, "user-1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_UnknownFieldRejected(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, `{"slotId":1,"unknown":true}`, "user-1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"slot not found", createBooking.ErrSlotNotFound, http.StatusNotFound},
		{"slot expired", createBooking.ErrSlotExpired, http.StatusBadRequest},
		{"invalid sub court", createBooking.ErrInvalidSubCourt, http.StatusBadRequest},
		{"game mode mismatch", createBooking.ErrGameModeMismatch, http.StatusBadRequest},
		{"already booked", createBooking.ErrAlreadyBooked, http.StatusConflict},
		{"court full", createBooking.ErrCourtFull, http.StatusConflict},
		{"tx conflict", createBooking.ErrTxConflict, http.StatusServiceUnavailable},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}

			rec := doRequest(t, uc, `{"slotId":1,"subCourtIndex":0,"gameMode":"singles"}`, "user-1")

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}
