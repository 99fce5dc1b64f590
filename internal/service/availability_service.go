package service

import (
	"github.com/noah-isme/idu-staffing-board/internal/models"
)

// AvailabilityService answers double-booking and DP conflict questions. Every query is a pure function of its
// inputs; an absent entry means "free".
type AvailabilityService struct {
	timetable *Timetable
	manual    models.ManualConflicts
}

// NewAvailabilityService wires the derived DP timetable and the manual conflict table.
func NewAvailabilityService(timetable *Timetable, manual models.ManualConflicts) *AvailabilityService {
	if timetable == nil {
		timetable = &Timetable{Schedule: models.DPSchedule{}}
	}
	if manual == nil {
		manual = models.ManualConflicts{}
	}
	return &AvailabilityService{timetable: timetable, manual: manual}
}

// IsTeacherBusy reports whether the teacher is placed in any class at day/block.
func (s *AvailabilityService) IsTeacherBusy(board *models.Board, teacher string, day models.Day, block models.Block) bool {
	if board == nil {
		return false
	}
	for key, teachers := range board.Assignments {
		if !key.SameTime(day, block) {
			continue
		}
		for _, t := range teachers {
			if t == teacher {
				return true
			}
		}
	}
	return false
}

// IsLocationBusy reports whether any teacher in any class holds the location at day/block.
func (s *AvailabilityService) IsLocationBusy(board *models.Board, location string, day models.Day, block models.Block) bool {
	if board == nil {
		return false
	}
	for key, locs := range board.Locations {
		if !key.SameTime(day, block) {
			continue
		}
		for _, loc := range locs {
			if loc == location {
				return true
			}
		}
	}
	return false
}

// TeacherConflict checks the manual table first, then the DP timetable.
func (s *AvailabilityService) TeacherConflict(teacher string, day models.Day, block models.Block) models.TeacherConflict {
	if s.manual.Has(teacher, day, block) {
		return models.TeacherConflict{HasConflict: true, ClassCode: models.ManualConflictLabel}
	}
	code, ok := s.timetable.Schedule.Lookup(teacher, day, block)
	if !ok || !isDPClassCode(code) {
		return models.TeacherConflict{}
	}
	return models.TeacherConflict{HasConflict: true, ClassCode: code}
}

// IsDPTeacher reports DP affiliation from the feed.
func (s *AvailabilityService) IsDPTeacher(teacher string) bool {
	return s.timetable.IsDPTeacher(teacher)
}
