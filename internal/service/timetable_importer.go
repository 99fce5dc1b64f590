package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/idu-staffing-board/internal/models"
)

const feedFieldCount = 6

// Timetable is the DP view derived from the external timetable feed.
type Timetable struct {
	Schedule   models.DPSchedule
	dpTeachers map[string]struct{}
	Rows       int
	Skipped    int
}

// IsDPTeacher reports whether the teacher teaches any Year 12/13 class in the feed.
func (t *Timetable) IsDPTeacher(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.dpTeachers[name]
	return ok
}

// DPTeachers returns the number of DP-affiliated teachers.
func (t *Timetable) DPTeachers() int {
	if t == nil {
		return 0
	}
	return len(t.dpTeachers)
}

// ImportTimetable folds the comma-separated feed into a DP schedule. Blank lines and rows with fewer than six
// fields are skipped; a later row for the same teacher, day and block replaces an earlier one.
func ImportTimetable(feed string, names *TeacherNameIndex, logger *zap.Logger) *Timetable {
	if logger == nil {
		logger = zap.NewNop()
	}
	tt := &Timetable{
		Schedule:   models.DPSchedule{},
		dpTeachers: make(map[string]struct{}),
	}

	for _, line := range strings.Split(strings.TrimSpace(feed), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, ok := parseFeedRow(line)
		if !ok {
			tt.Skipped++
			continue
		}
		tt.Rows++

		teacher := resolveTeacherName(entry, names)
		if isDPEntry(entry) {
			tt.dpTeachers[teacher] = struct{}{}
		}

		day := models.Day("Day " + entry.Day)
		block := models.Block("Block " + entry.Block)
		if entry.Block == string(models.BlockDT) {
			block = models.BlockDT
		}

		days, ok := tt.Schedule[teacher]
		if !ok {
			days = make(map[models.Day]map[models.Block]string)
			tt.Schedule[teacher] = days
		}
		blocks, ok := days[day]
		if !ok {
			blocks = make(map[models.Block]string)
			days[day] = blocks
		}
		blocks[block] = entry.ClassCode
	}

	logger.Debug("timetable feed imported",
		zap.Int("rows", tt.Rows),
		zap.Int("skipped", tt.Skipped),
		zap.Int("teachers", len(tt.Schedule)),
		zap.Int("dp_teachers", len(tt.dpTeachers)),
	)
	return tt
}

func parseFeedRow(line string) (models.ScheduleEntry, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < feedFieldCount {
		return models.ScheduleEntry{}, false
	}
	return models.ScheduleEntry{
		ClassCode:       strings.TrimSpace(parts[0]),
		YearGroup:       strings.TrimSpace(parts[1]),
		TeacherCode:     strings.TrimSpace(parts[2]),
		TeacherNickname: strings.TrimSpace(parts[3]),
		Day:             strings.TrimSpace(parts[4]),
		Block:           strings.TrimSpace(parts[5]),
	}, true
}

// resolveTeacherName tries the code, then the nickname, against the override table and finally falls back to the
// nickname. When several names share a code the first override in table order wins.
func resolveTeacherName(entry models.ScheduleEntry, names *TeacherNameIndex) string {
	if names != nil {
		if name, ok := names.ReverseLookup(entry.TeacherCode); ok {
			return name
		}
		if name, ok := names.ReverseLookup(entry.TeacherNickname); ok {
			return name
		}
	}
	return entry.TeacherNickname
}

func isDPEntry(entry models.ScheduleEntry) bool {
	return entry.YearGroup == "Year 12" || entry.YearGroup == "Year 13" || isDPClassCode(entry.ClassCode)
}

func isDPClassCode(code string) bool {
	return strings.HasPrefix(code, "12") || strings.HasPrefix(code, "13")
}
