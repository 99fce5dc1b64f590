package models

// YearGroup is a cohort sharing an IDU unit and a teacher roster.
type YearGroup struct {
	ID            string              `json:"id" yaml:"id"`
	Name          string              `json:"name" yaml:"name"`
	Classes       []string            `json:"classes" yaml:"classes"`
	Teachers      []string            `json:"teachers" yaml:"teachers"`
	ClassTeachers map[string][]string `json:"classTeacherMapping,omitempty" yaml:"class_teachers"`
}

// HasClass reports whether the class belongs to the year group.
func (y YearGroup) HasClass(class string) bool {
	for _, c := range y.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// TeachersFor returns the class-specific subset when configured, otherwise the full roster.
func (y YearGroup) TeachersFor(class string) []string {
	if subset, ok := y.ClassTeachers[class]; ok && len(subset) > 0 {
		return subset
	}
	return y.Teachers
}

// NameOverride pins a teacher code to a full display name.
type NameOverride struct {
	Code     string `json:"code" yaml:"code"`
	FullName string `json:"fullName" yaml:"full_name"`
}

// ManualConflicts lists extra "{day}-{block}" conflicts per teacher, e.g. duty periods.
type ManualConflicts map[string][]string

// Has reports whether the teacher has a manual conflict at day/block.
func (m ManualConflicts) Has(teacher string, day Day, block Block) bool {
	entries, ok := m[teacher]
	if !ok {
		return false
	}
	want := string(day) + "-" + string(block)
	for _, entry := range entries {
		if entry == want {
			return true
		}
	}
	return false
}

// ScheduleEntry is one row of the external timetable feed.
type ScheduleEntry struct {
	ClassCode       string
	YearGroup       string
	TeacherCode     string
	TeacherNickname string
	Day             string
	Block           string
}

// DPSchedule maps teacher -> day -> block -> class code.
type DPSchedule map[string]map[Day]map[Block]string

// Lookup returns the class code scheduled for the teacher at day/block.
func (s DPSchedule) Lookup(teacher string, day Day, block Block) (string, bool) {
	days, ok := s[teacher]
	if !ok {
		return "", false
	}
	blocks, ok := days[day]
	if !ok {
		return "", false
	}
	code, ok := blocks[block]
	return code, ok
}

// ManualConflictLabel is reported for conflicts taken from the manual override table.
const ManualConflictLabel = "DP Class / Busy"

// TeacherConflict is the result of a DP conflict lookup.
type TeacherConflict struct {
	HasConflict bool   `json:"hasConflict"`
	ClassCode   string `json:"classCode,omitempty"`
}

// TeacherChip is a sidebar entry for one teacher.
type TeacherChip struct {
	Name     string          `json:"name"`
	Code     string          `json:"code,omitempty"`
	IsDP     bool            `json:"isDP"`
	Busy     bool            `json:"busy"`
	Conflict TeacherConflict `json:"conflict"`
}

// LocationGroup is a display group of locations.
type LocationGroup struct {
	Name      string   `json:"name"`
	Locations []string `json:"locations"`
}

// LocationCatalogue lists the locations offered for a year group.
type LocationCatalogue struct {
	Shared       []string        `json:"shared"`
	YearSpecific []string        `json:"yearSpecific"`
	Groups       []LocationGroup `json:"groups"`
}
