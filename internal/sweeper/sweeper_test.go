package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlotRepo struct {
	mu        sync.Mutex
	expired   []int64
	listErr   error
	deleteErr error

	deletedIDs []int64
}

func (f *fakeSlotRepo) ListExpiredIDs(_ context.Context, _ time.Time) ([]int64, error) {
	return f.expired, f.listErr
}

func (f *fakeSlotRepo) DeleteByIDs(_ context.Context, ids []int64) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.mu.Lock()
	f.deletedIDs = append(f.deletedIDs, ids...)
	f.mu.Unlock()
	return int64(len(ids)), nil
}

func (f *fakeSlotRepo) deleted() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.deletedIDs...)
}

type fakeBookingRepo struct {
	deleteErr error

	deletedSlotIDs []int64
	callOrder      *[]string
}

func (f *fakeBookingRepo) DeleteBySlotIDs(_ context.Context, slotIDs []int64) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	if f.callOrder != nil {
		*f.callOrder = append(*f.callOrder, "bookings")
	}
	f.deletedSlotIDs = append(f.deletedSlotIDs, slotIDs...)
	return int64(len(slotIDs) * 2), nil
}

type orderedSlotRepo struct {
	fakeSlotRepo
	callOrder *[]string
}

func (f *orderedSlotRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	*f.callOrder = append(*f.callOrder, "slots")
	return f.fakeSlotRepo.DeleteByIDs(ctx, ids)
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSweep_DeletesBookingsBeforeSlots(t *testing.T) {
	var order []string
	slots := &orderedSlotRepo{fakeSlotRepo: fakeSlotRepo{expired: []int64{1, 2}}, callOrder: &order}
	bookings := &fakeBookingRepo{callOrder: &order}

	s := New(slots, bookings, &fakeClock{now: time.Now()}, nopLogger{}, time.Hour)

	require.NoError(t, s.Sweep(context.Background()))

	assert.Equal(t, []string{"bookings", "slots"}, order)
	assert.Equal(t, []int64{1, 2}, bookings.deletedSlotIDs)
	assert.Equal(t, []int64{1, 2}, slots.deletedIDs)
}

func TestSweep_NothingExpired(t *testing.T) {
	slots := &fakeSlotRepo{}
	bookings := &fakeBookingRepo{}

	s := New(slots, bookings, &fakeClock{now: time.Now()}, nopLogger{}, time.Hour)

	require.NoError(t, s.Sweep(context.Background()))

	assert.Empty(t, bookings.deletedSlotIDs)
	assert.Empty(t, slots.deletedIDs)
}

func TestSweep_BookingDeletionFailureKeepsSlots(t *testing.T) {
	slots := &fakeSlotRepo{expired: []int64{1}}
	bookings := &fakeBookingRepo{deleteErr: errors.New("db down")}

	s := New(slots, bookings, &fakeClock{now: time.Now()}, nopLogger{}, time.Hour)

	require.Error(t, s.Sweep(context.Background()))

	// Слоты не трогаем, пока их бронирования не удалены
	assert.Empty(t, slots.deletedIDs)
}

func TestSweep_ListFailure(t *testing.T) {
	slots := &fakeSlotRepo{listErr: errors.New("db down")}
	bookings := &fakeBookingRepo{}

	s := New(slots, bookings, &fakeClock{now: time.Now()}, nopLogger{}, time.Hour)

	require.Error(t, s.Sweep(context.Background()))
	assert.Empty(t, bookings.deletedSlotIDs)
}

func TestStart_RunsImmediatelyAndStopsOnCancel(t *testing.T) {
	slots := &fakeSlotRepo{expired: []int64{7}}
	bookings := &fakeBookingRepo{}

	s := New(slots, bookings, &fakeClock{now: time.Now()}, nopLogger{}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	// Первый проход выполняется сразу, без ожидания тикера
	require.Eventually(t, func() bool {
		return len(slots.deleted()) > 0
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
