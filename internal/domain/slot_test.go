package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot_CanonicalCourtSet(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	slot := NewSlot(start)

	require.Len(t, slot.SubCourts, SinglesCourts+DoublesCourts)
	assert.Equal(t, start, slot.StartTime)
	assert.Equal(t, start.Add(SlotDurationMinutes*time.Minute), slot.EndTime)

	for i := 0; i < SinglesCourts; i++ {
		assert.Equal(t, i, slot.SubCourts[i].Index)
		assert.Equal(t, SinglesCapacity, slot.SubCourts[i].Capacity)
		assert.Equal(t, ModeSingles, slot.SubCourts[i].CourtType)
	}

	for i := 0; i < DoublesCourts; i++ {
		court := slot.SubCourts[SinglesCourts+i]
		assert.Equal(t, SinglesCourts+i, court.Index)
		assert.Equal(t, DoublesCapacity, court.Capacity)
		assert.Equal(t, ModeDoubles, court.CourtType)
	}
}

func TestSlot_SubCourt(t *testing.T) {
	slot := NewSlot(time.Now())

	court, ok := slot.SubCourt(0)
	require.True(t, ok)
	assert.Equal(t, ModeSingles, court.CourtType)

	court, ok = slot.SubCourt(SinglesCourts)
	require.True(t, ok)
	assert.Equal(t, ModeDoubles, court.CourtType)

	_, ok = slot.SubCourt(99)
	assert.False(t, ok)

	_, ok = slot.SubCourt(-1)
	assert.False(t, ok)
}

func TestSlot_IsExpired(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	slot := NewSlot(start)

	assert.False(t, slot.IsExpired(start))
	assert.False(t, slot.IsExpired(slot.EndTime.Add(-time.Second)))
	// Граница: слот считается прошедшим ровно в момент окончания
	assert.True(t, slot.IsExpired(slot.EndTime))
	assert.True(t, slot.IsExpired(slot.EndTime.Add(time.Hour)))
}

func TestSlot_StatusFor(t *testing.T) {
	slot := NewSlot(time.Now())

	// Без бронирований слот полностью свободен
	assert.Equal(t, SlotStatusAvailable, slot.StatusFor(map[int]int{}))

	// Хотя бы одно занятое место делает слот частично занятым
	assert.Equal(t, SlotStatusPartial, slot.StatusFor(map[int]int{0: 1}))

	// Все корты, кроме одного, заполнены: все еще partial
	almostFull := map[int]int{}
	for _, court := range slot.SubCourts {
		almostFull[court.Index] = court.Capacity
	}
	almostFull[0] = SinglesCapacity - 1
	assert.Equal(t, SlotStatusPartial, slot.StatusFor(almostFull))

	// Все корты на пределе вместимости
	full := map[int]int{}
	for _, court := range slot.SubCourts {
		full[court.Index] = court.Capacity
	}
	assert.Equal(t, SlotStatusFull, slot.StatusFor(full))
}

func TestSubCourts_ScanValue(t *testing.T) {
	courts := NewSlot(time.Now()).SubCourts

	value, err := courts.Value()
	require.NoError(t, err)

	raw, ok := value.([]byte)
	require.True(t, ok)

	var scanned SubCourts
	require.NoError(t, scanned.Scan(raw))
	assert.Equal(t, courts, scanned)

	var fromString SubCourts
	require.NoError(t, fromString.Scan(string(raw)))
	assert.Equal(t, courts, fromString)

	var fromNil SubCourts
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)

	assert.Error(t, scanned.Scan(42))
}

func TestBooking_ActiveState(t *testing.T) {
	b := &Booking{ID: 1}
	assert.True(t, b.IsActive())
	assert.False(t, b.IsCancelled())

	now := time.Now()
	b.CancelledAt = &now
	assert.False(t, b.IsActive())
	assert.True(t, b.IsCancelled())
}
