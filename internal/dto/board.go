package dto

import "github.com/noah-isme/idu-staffing-board/internal/models"

// TeacherAssignmentRequest places or removes a teacher in a slot.
type TeacherAssignmentRequest struct {
	Day     string `json:"day" validate:"required"`
	Block   string `json:"block" validate:"required"`
	Year    string `json:"year" validate:"required"`
	Class   string `json:"class" validate:"required"`
	Teacher string `json:"teacher" validate:"required,excludesall=0x2C"`
}

// LocationAssignmentRequest sets the room a teacher uses in a slot.
type LocationAssignmentRequest struct {
	Day      string `json:"day" validate:"required"`
	Block    string `json:"block" validate:"required"`
	Year     string `json:"year" validate:"required"`
	Class    string `json:"class" validate:"required"`
	Teacher  string `json:"teacher" validate:"required,excludesall=0x2C"`
	Location string `json:"location" validate:"required"`
}

// SlotQuery addresses a single slot.
type SlotQuery struct {
	Day   string `form:"day" validate:"required"`
	Block string `form:"block" validate:"required"`
	Year  string `form:"year" validate:"required"`
	Class string `form:"class" validate:"required"`
}

// Sidebar view modes.
const (
	ViewByBlock = "byBlock"
	ViewByClass = "byClass"
)

// SidebarQuery selects the teacher chips shown next to the board.
type SidebarQuery struct {
	Year  string `form:"year" validate:"required"`
	Class string `form:"class"`
	Day   string `form:"day" validate:"required"`
	Block string `form:"block"`
	View  string `form:"view" validate:"omitempty,oneof=byBlock byClass"`
}

// TeacherAvailabilityQuery asks whether a teacher is free at a day and block.
type TeacherAvailabilityQuery struct {
	Teacher string `form:"teacher" validate:"required"`
	Day     string `form:"day" validate:"required"`
	Block   string `form:"block" validate:"required"`
}

// LocationAvailabilityQuery asks whether a location is free at a day and block.
type LocationAvailabilityQuery struct {
	Location string `form:"location" validate:"required"`
	Day      string `form:"day" validate:"required"`
	Block    string `form:"block" validate:"required"`
}

// TeacherAvailabilityResponse answers a teacher availability query.
type TeacherAvailabilityResponse struct {
	Teacher  string                 `json:"teacher"`
	Day      string                 `json:"day"`
	Block    string                 `json:"block"`
	Busy     bool                   `json:"busy"`
	Conflict models.TeacherConflict `json:"conflict"`
}

// LocationAvailabilityResponse answers a location availability query.
type LocationAvailabilityResponse struct {
	Location string `json:"location"`
	Day      string `json:"day"`
	Block    string `json:"block"`
	Busy     bool   `json:"busy"`
}

// SyncSettingsRequest replaces the web-app URL of the shared spreadsheet.
type SyncSettingsRequest struct {
	ScriptURL string `json:"scriptUrl" validate:"omitempty,url"`
}

// SyncSettingsResponse echoes the active settings.
type SyncSettingsResponse struct {
	Configured bool   `json:"configured"`
	ScriptURL  string `json:"scriptUrl,omitempty"`
}

// Export formats.
const (
	ExportFormatCSV  = "csv"
	ExportFormatPDF  = "pdf"
	ExportFormatXLSX = "xlsx"
)

// ExportQuery selects the day board to export.
type ExportQuery struct {
	Day    string `form:"day"`
	Format string `form:"format" validate:"omitempty,oneof=csv pdf xlsx"`
}
