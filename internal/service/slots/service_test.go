package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/slots/models"
)

type fakeSlotRepo struct {
	slots []*domain.Slot
	err   error
}

func (f *fakeSlotRepo) ForEachInRange(_ context.Context, _, _ time.Time, fn func(*domain.Slot) error) error {
	if f.err != nil {
		return f.err
	}
	for _, slot := range f.slots {
		if err := fn(slot); err != nil {
			return err
		}
	}
	return nil
}

type fakeBookingRepo struct {
	occupancy map[int64]map[int]int
	err       error
}

func (f *fakeBookingRepo) GetOccupancyBySlot(_ context.Context, slotID int64) (map[int]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.occupancy[slotID], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestStreamByRange_StatusAndOccupancy(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	free := domain.NewSlot(base)
	free.ID = 1
	busy := domain.NewSlot(base.Add(time.Hour))
	busy.ID = 2

	slotRepo := &fakeSlotRepo{slots: []*domain.Slot{free, busy}}
	bookingRepo := &fakeBookingRepo{occupancy: map[int64]map[int]int{
		2: {0: 1},
	}}

	svc := NewService(slotRepo, bookingRepo, nopLogger{})

	var items []*models.SlotListItem
	err := svc.StreamByRange(context.Background(), base, base.Add(24*time.Hour), func(item *models.SlotListItem) error {
		items = append(items, item)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, string(domain.SlotStatusAvailable), items[0].Status)

	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, string(domain.SlotStatusPartial), items[1].Status)
	assert.Equal(t, 1, items[1].SubCourts[0].Occupied)
	assert.Equal(t, 0, items[1].SubCourts[1].Occupied)
}

func TestStreamByRange_InvalidRange(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, &fakeBookingRepo{}, nopLogger{})

	now := time.Now()
	err := svc.StreamByRange(context.Background(), now, now, func(*models.SlotListItem) error { return nil })

	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestStreamByRange_CallbackErrorStopsStream(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	first := domain.NewSlot(base)
	first.ID = 1
	second := domain.NewSlot(base.Add(time.Hour))
	second.ID = 2

	slotRepo := &fakeSlotRepo{slots: []*domain.Slot{first, second}}
	svc := NewService(slotRepo, &fakeBookingRepo{}, nopLogger{})

	seen := 0
	err := svc.StreamByRange(context.Background(), base, base.Add(24*time.Hour), func(*models.SlotListItem) error {
		seen++
		return errors.New("client gone")
	})

	require.Error(t, err)
	assert.Equal(t, 1, seen)
}

func TestStreamByRange_OccupancyError(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	slot := domain.NewSlot(base)
	slot.ID = 1

	svc := NewService(
		&fakeSlotRepo{slots: []*domain.Slot{slot}},
		&fakeBookingRepo{err: errors.New("db down")},
		nopLogger{},
	)

	err := svc.StreamByRange(context.Background(), base, base.Add(time.Hour), func(*models.SlotListItem) error {
		t.Fatal("callback must not be invoked")
		return nil
	})

	assert.ErrorIs(t, err, ErrInternal)
}
