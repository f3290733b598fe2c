package models

import "time"

// SubCourtInfo занятость одного корта внутри слота
type SubCourtInfo struct {
	Index     int    `json:"index"`
	CourtType string `json:"courtType"`
	Capacity  int    `json:"capacity"`
	Occupied  int    `json:"occupied"`
}

// SlotListItem элемент списка слотов с агрегированным статусом
type SlotListItem struct {
	ID        int64          `json:"id"`
	StartTime time.Time      `json:"startTime"`
	EndTime   time.Time      `json:"endTime"`
	Status    string         `json:"status"`
	SubCourts []SubCourtInfo `json:"subCourts"`
}
