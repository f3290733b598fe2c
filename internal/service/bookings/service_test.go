package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	byID      map[int64]*domain.Booking
	cancelErr error
}

func newFakeRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{byID: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.byID[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetActiveByUser(_ context.Context, userID string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.UserID == userID && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListActive(_ context.Context) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	b, ok := f.byID[id]
	if !ok || b.IsCancelled() {
		return bookingRepo.ErrBookingNotFound
	}
	now := time.Now()
	b.CancelledAt = &now
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeBooking(id int64, userID string) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		UserID:        userID,
		SlotID:        10,
		SubCourtIndex: 0,
		GameMode:      domain.ModeSingles,
		PlayersCount:  1,
	}
}

func TestCancel_Success(t *testing.T) {
	repo := newFakeRepo(activeBooking(1, "user-1"))
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Cancel(context.Background(), 1, "user-1")

	require.NoError(t, err)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, int64(1), resp.ID)

	stored := repo.byID[1]
	assert.True(t, stored.IsCancelled())
}

func TestCancel_ForeignBookingLooksMissing(t *testing.T) {
	repo := newFakeRepo(activeBooking(1, "user-1"))
	svc := NewService(repo, nopLogger{})

	_, err := svc.Cancel(context.Background(), 1, "user-2")

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.True(t, repo.byID[1].IsActive())
}

func TestCancel_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	_, err := svc.Cancel(context.Background(), 404, "user-1")

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	b := activeBooking(1, "user-1")
	b.CancelledAt = ptr.Ptr(time.Now())

	svc := NewService(newFakeRepo(b), nopLogger{})

	_, err := svc.Cancel(context.Background(), 1, "user-1")

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancel_ConcurrentCancelIsAlreadyCancelled(t *testing.T) {
	// Запись активна при чтении, но конкурентная отмена выигрывает гонку
	repo := newFakeRepo(activeBooking(1, "user-1"))
	repo.cancelErr = bookingRepo.ErrBookingNotFound
	svc := NewService(repo, nopLogger{})

	_, err := svc.Cancel(context.Background(), 1, "user-1")

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancel_InvalidInput(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	_, err := svc.Cancel(context.Background(), 0, "user-1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Cancel(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdminCancel_IgnoresOwnership(t *testing.T) {
	repo := newFakeRepo(activeBooking(1, "user-1"))
	svc := NewService(repo, nopLogger{})

	resp, err := svc.AdminCancel(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, resp.CancelledAt)
	assert.True(t, repo.byID[1].IsCancelled())
}

func TestAdminCancel_AlreadyCancelled(t *testing.T) {
	b := activeBooking(1, "user-1")
	b.CancelledAt = ptr.Ptr(time.Now())

	svc := NewService(newFakeRepo(b), nopLogger{})

	_, err := svc.AdminCancel(context.Background(), 1)

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestGetUserBookings_OnlyActiveOwn(t *testing.T) {
	cancelled := activeBooking(2, "user-1")
	cancelled.CancelledAt = ptr.Ptr(time.Now())

	repo := newFakeRepo(
		activeBooking(1, "user-1"),
		cancelled,
		activeBooking(3, "user-2"),
	)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
}

func TestGetAllBookings(t *testing.T) {
	repo := newFakeRepo(activeBooking(1, "user-1"), activeBooking(2, "user-2"))
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetAllBookings(context.Background())

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}
