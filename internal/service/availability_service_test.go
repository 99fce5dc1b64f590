package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/idu-staffing-board/internal/models"
)

func TestTeacherConflictPrecedence(t *testing.T) {
	tt := ImportTimetable("12BI6_41,Year 12,AL,Aj Lim,1,4\n12BI6_41,Year 12,AL,Aj Lim,3,1\n10MA_01,Year 10,MP,Myra Pyne,2,2\n", nil, nil)
	svc := NewAvailabilityService(tt, models.ManualConflicts{"Aj Lim": {"Day 1-Block 4"}})

	conflict := svc.TeacherConflict("Aj Lim", models.Day1, models.Block4)
	assert.Equal(t, models.TeacherConflict{HasConflict: true, ClassCode: "DP Class / Busy"}, conflict)

	conflict = svc.TeacherConflict("Aj Lim", models.Day3, models.Block1)
	assert.Equal(t, models.TeacherConflict{HasConflict: true, ClassCode: "12BI6_41"}, conflict)

	assert.False(t, svc.TeacherConflict("Myra Pyne", models.Day2, models.Block2).HasConflict)
	assert.False(t, svc.TeacherConflict("Aj Lim", models.Day5, models.BlockDT).HasConflict)
	assert.False(t, svc.TeacherConflict("Nobody", models.Day1, models.Block1).HasConflict)
}

func TestBusyChecksScanSameTimeOnly(t *testing.T) {
	svc := NewAvailabilityService(nil, nil)
	board := models.NewBoard()
	k71 := models.SlotKey{Day: models.Day1, Block: models.Block1, Year: "Year 7", Class: "7.1"}
	k82 := models.SlotKey{Day: models.Day1, Block: models.Block2, Year: "Year 8", Class: "8.2"}
	board.Assignments[k71] = []string{"Tod Baker"}
	board.Locations[k82] = map[string]string{"Alan Kirk": "Theatre"}

	assert.True(t, svc.IsTeacherBusy(board, "Tod Baker", models.Day1, models.Block1))
	assert.False(t, svc.IsTeacherBusy(board, "Tod Baker", models.Day1, models.Block2))
	assert.False(t, svc.IsTeacherBusy(board, "Alan Kirk", models.Day1, models.Block2))

	assert.True(t, svc.IsLocationBusy(board, "Theatre", models.Day1, models.Block2))
	assert.False(t, svc.IsLocationBusy(board, "Theatre", models.Day1, models.Block1))
	assert.False(t, svc.IsLocationBusy(nil, "Theatre", models.Day1, models.Block2))
}
