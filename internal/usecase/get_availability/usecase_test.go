package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/slot"
)

type fakeSlotRepo struct {
	slot  *domain.Slot
	err   error
	calls int
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.Slot, error) {
	f.calls++
	return f.slot, f.err
}

type fakeBookingRepo struct {
	active []*domain.Booking
	err    error
}

func (f *fakeBookingRepo) GetActiveBySlot(_ context.Context, _ int64) ([]*domain.Booking, error) {
	return f.active, f.err
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSlot() *domain.Slot {
	slot := domain.NewSlot(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	slot.ID = 1
	return slot
}

func newTestUseCase(slots *fakeSlotRepo, bookings *fakeBookingRepo, ttl time.Duration, now time.Time) *UseCase {
	uc := NewUseCase(slots, bookings, ttl, nopLogger{})
	uc.timeProvider = &fakeClock{now: now}
	return uc
}

func TestExecute_EmptySlot(t *testing.T) {
	slot := testSlot()
	uc := newTestUseCase(&fakeSlotRepo{slot: slot}, &fakeBookingRepo{}, 0, slot.StartTime)

	resp, err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusAvailable, resp.Status)
	require.Len(t, resp.SubCourts, domain.SinglesCourts+domain.DoublesCourts)

	for _, court := range resp.SubCourts {
		assert.Equal(t, 0, court.Occupied)
		assert.Equal(t, court.Capacity, court.Available)
		assert.Empty(t, court.Bookings)

		if court.CourtType == domain.ModeSingles {
			assert.True(t, court.CanBookSingles)
			assert.False(t, court.CanBookDoubles)
		} else {
			assert.False(t, court.CanBookSingles)
			assert.True(t, court.CanBookDoubles)
		}
	}
}

func TestExecute_PartialOccupancy(t *testing.T) {
	slot := testSlot()
	active := []*domain.Booking{
		{ID: 1, SlotID: 1, SubCourtIndex: 0, GameMode: domain.ModeSingles, PlayersCount: 1},
	}
	uc := newTestUseCase(&fakeSlotRepo{slot: slot}, &fakeBookingRepo{active: active}, 0, slot.StartTime)

	resp, err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusPartial, resp.Status)

	court := resp.SubCourts[0]
	assert.Equal(t, 1, court.Occupied)
	assert.Equal(t, domain.SinglesCapacity-1, court.Available)
	require.Len(t, court.Bookings, 1)
	assert.Equal(t, domain.ModeSingles, court.Bookings[0].GameMode)

	// Остальные корты не затронуты
	assert.Equal(t, 0, resp.SubCourts[1].Occupied)
}

func TestExecute_FullCourtNotBookable(t *testing.T) {
	slot := testSlot()
	active := make([]*domain.Booking, 0, domain.SinglesCapacity)
	for i := 0; i < domain.SinglesCapacity; i++ {
		active = append(active, &domain.Booking{
			ID: int64(i + 1), SlotID: 1, SubCourtIndex: 0,
			GameMode: domain.ModeSingles, PlayersCount: 1,
		})
	}
	uc := newTestUseCase(&fakeSlotRepo{slot: slot}, &fakeBookingRepo{active: active}, 0, slot.StartTime)

	resp, err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusPartial, resp.Status)

	court := resp.SubCourts[0]
	assert.Equal(t, 0, court.Available)
	assert.False(t, court.CanBookSingles)
	assert.False(t, court.CanBookDoubles)
}

func TestExecute_SlotNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{err: slotRepo.ErrSlotNotFound}, &fakeBookingRepo{}, 0, time.Now())

	_, err := uc.Execute(context.Background(), 1)

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotExpired(t *testing.T) {
	slot := testSlot()
	uc := newTestUseCase(&fakeSlotRepo{slot: slot}, &fakeBookingRepo{}, 0, slot.EndTime)

	_, err := uc.Execute(context.Background(), 1)

	assert.ErrorIs(t, err, ErrSlotExpired)
}

func TestExecute_InvalidSlotID(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &fakeBookingRepo{}, 0, time.Now())

	_, err := uc.Execute(context.Background(), 0)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CachedProjectionIsReused(t *testing.T) {
	slot := testSlot()
	slots := &fakeSlotRepo{slot: slot}
	uc := newTestUseCase(slots, &fakeBookingRepo{}, time.Minute, slot.StartTime)

	first, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, slots.calls)
}

func TestExecute_ZeroTTLDisablesCache(t *testing.T) {
	slot := testSlot()
	slots := &fakeSlotRepo{slot: slot}
	uc := newTestUseCase(slots, &fakeBookingRepo{}, 0, slot.StartTime)

	_, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, slots.calls)
}
