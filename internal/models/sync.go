package models

import "time"

// SyncStatus describes whether a slot's latest local state reached the backing store.
type SyncStatus string

const (
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusPending SyncStatus = "pending"
	SyncStatusFailed  SyncStatus = "failed"
)

// SlotSyncState tracks the delivery of the latest write for a slot.
type SlotSyncState struct {
	Key       SlotKey    `json:"key"`
	Status    SyncStatus `json:"status"`
	Version   uint64     `json:"version"`
	Attempts  int        `json:"attempts"`
	LastError string     `json:"lastError,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// SyncOverview summarises the sync pipeline.
type SyncOverview struct {
	LastLoadedAt *time.Time      `json:"lastLoadedAt,omitempty"`
	Pending      int             `json:"pending"`
	Failed       int             `json:"failed"`
	Slots        []SlotSyncState `json:"slots"`
}

// SlotTeacher is one teacher placed in a slot with their location and DP state.
type SlotTeacher struct {
	Name     string          `json:"name"`
	Location string          `json:"location,omitempty"`
	Conflict TeacherConflict `json:"conflict"`
}

// SlotView is the rendered state of a single slot.
type SlotView struct {
	Key        string        `json:"key"`
	Day        Day           `json:"day"`
	Block      Block         `json:"block"`
	Year       string        `json:"year"`
	Class      string        `json:"class"`
	Teachers   []SlotTeacher `json:"teachers"`
	SyncStatus SyncStatus    `json:"syncStatus"`
}

// DayBoardRow is one class row of a day board.
type DayBoardRow struct {
	Year   string                  `json:"year"`
	Class  string                  `json:"class"`
	Blocks map[Block][]SlotTeacher `json:"blocks"`
}

// DayBoard is the printable board for a single day.
type DayBoard struct {
	Day  Day           `json:"day"`
	Rows []DayBoardRow `json:"rows"`
}
