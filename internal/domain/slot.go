package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// GameMode represents the kind of game a court is reserved for
type GameMode string

const (
	ModeSingles GameMode = "singles"
	ModeDoubles GameMode = "doubles"
)

// Valid returns true if the game mode is one of the supported values
func (m GameMode) Valid() bool {
	return m == ModeSingles || m == ModeDoubles
}

// SubCourt represents one independently capacitated court within a slot.
// The descriptor is immutable for the lifetime of its slot.
type SubCourt struct {
	Index     int      `json:"index"`
	Capacity  int      `json:"capacity"`
	CourtType GameMode `json:"courtType"`
}

// SubCourts is the ordered list of court descriptors embedded in a slot.
// Stored as a JSONB column, the slot exclusively owns its descriptors.
type SubCourts []SubCourt

// Value implements driver.Valuer for storing the descriptors as JSONB
func (s SubCourts) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for reading the descriptors from JSONB
func (s *SubCourts) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("sub_courts: unsupported scan type %T", src)
	}
}

// Slot represents one fixed-duration bookable time window
type Slot struct {
	ID        int64
	StartTime time.Time
	EndTime   time.Time
	SubCourts SubCourts

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSlot builds a slot with the canonical court set:
// SinglesCourts singles courts followed by DoublesCourts doubles courts.
// End time is always start + SlotDurationMinutes.
func NewSlot(startTime time.Time) *Slot {
	courts := make(SubCourts, 0, SinglesCourts+DoublesCourts)

	for i := 0; i < SinglesCourts; i++ {
		courts = append(courts, SubCourt{
			Index:     i,
			Capacity:  SinglesCapacity,
			CourtType: ModeSingles,
		})
	}

	for i := 0; i < DoublesCourts; i++ {
		courts = append(courts, SubCourt{
			Index:     i + SinglesCourts,
			Capacity:  DoublesCapacity,
			CourtType: ModeDoubles,
		})
	}

	return &Slot{
		StartTime: startTime,
		EndTime:   startTime.Add(SlotDurationMinutes * time.Minute),
		SubCourts: courts,
	}
}

// SubCourt returns the court descriptor with the given index, if present
func (s *Slot) SubCourt(index int) (*SubCourt, bool) {
	for i := range s.SubCourts {
		if s.SubCourts[i].Index == index {
			return &s.SubCourts[i], true
		}
	}
	return nil, false
}

// IsExpired returns true if the slot's end time has passed
func (s *Slot) IsExpired(now time.Time) bool {
	return !s.EndTime.After(now)
}

// SlotStatus is the derived window-level availability status
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusPartial   SlotStatus = "partial"
	SlotStatusFull      SlotStatus = "full"
)

// ErrUnknownSubCourt возвращается, когда occupancy ссылается на несуществующий корт
var ErrUnknownSubCourt = errors.New("domain: occupancy references unknown sub-court")

// StatusFor derives the slot-level status from per-court occupancy
// (sub-court index -> total booked players). A slot with no active bookings
// is available; a slot where every court is at capacity is full; anything
// in between is partial.
func (s *Slot) StatusFor(occupancy map[int]int) SlotStatus {
	total := 0
	for _, n := range occupancy {
		total += n
	}
	if total == 0 {
		return SlotStatusAvailable
	}

	for _, court := range s.SubCourts {
		if occupancy[court.Index] < court.Capacity {
			return SlotStatusPartial
		}
	}
	return SlotStatusFull
}
