package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/idu-staffing-board/internal/dto"
	"github.com/noah-isme/idu-staffing-board/internal/models"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
	"github.com/noah-isme/idu-staffing-board/pkg/export"
)

type pdfRecorder struct {
	title string
}

func (p *pdfRecorder) Render(data export.Dataset, title string) ([]byte, error) {
	p.title = title
	return []byte("%PDF"), nil
}

func seededExport(t *testing.T) (*ExportService, *BoardService) {
	t.Helper()
	board := newTestBoard(t, &syncerStub{})
	ctx := context.Background()
	_, err := board.AssignTeacher(ctx, teacherReq("7.1", "Tod Baker"))
	require.NoError(t, err)
	_, err = board.AssignTeacher(ctx, teacherReq("7.1", "Myra Pyne"))
	require.NoError(t, err)
	_, err = board.AssignLocation(ctx, dto.LocationAssignmentRequest{Day: "Day 1", Block: "Block 1", Year: "Year 7", Class: "7.1", Teacher: "Tod Baker", Location: "Theatre"})
	require.NoError(t, err)

	svc := NewExportService(board, nil, nil, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC) }
	return svc, board
}

func TestExportCSVDayBoard(t *testing.T) {
	svc, _ := seededExport(t)

	file, err := svc.Export(dto.ExportQuery{})
	require.NoError(t, err)
	assert.Equal(t, "idu-staffing_day-1_20260112.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	records, err := csv.NewReader(bytes.NewReader(file.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 21)
	assert.Equal(t, []string{"Year", "Class", "Block 1", "Block 2", "Block 3", "Block 4", "DT"}, records[0])
	assert.Equal(t, "Year 7", records[1][0])
	assert.Equal(t, "7.1", records[1][1])
	assert.Equal(t, "Tod Baker (Theatre)\nMyra Pyne", records[1][2])
	assert.Empty(t, records[2][2])
}

func TestExportPDFTitle(t *testing.T) {
	svc, board := seededExport(t)
	pdf := &pdfRecorder{}
	svc = NewExportService(board, nil, nil, pdf, nil)

	file, err := svc.Export(dto.ExportQuery{Day: "Day 3", Format: "PDF"})
	require.NoError(t, err)
	assert.Equal(t, "IDU Staffing - Day 3 (Wednesday)", pdf.title)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
}

func TestExportWorkbookHasSheetPerDay(t *testing.T) {
	svc, _ := seededExport(t)

	file, err := svc.Export(dto.ExportQuery{Format: dto.ExportFormatXLSX})
	require.NoError(t, err)
	assert.Equal(t, "idu-staffing_week_20260112.xlsx", file.Filename)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Body))
	require.NoError(t, err)
	defer wb.Close()
	assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, wb.GetSheetList())

	value, err := wb.GetCellValue("Monday", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Tod Baker (Theatre)\nMyra Pyne", value)
}

func TestExportRejectsBadInput(t *testing.T) {
	svc, _ := seededExport(t)

	_, err := svc.Export(dto.ExportQuery{Day: "Day 8"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Export(dto.ExportQuery{Format: "docx"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestFormatCellOmitsEmptyLocation(t *testing.T) {
	cell := formatCell([]models.SlotTeacher{{Name: "Aj Lim"}, {Name: "Alan Kirk", Location: "3B3"}})
	assert.Equal(t, "Aj Lim\nAlan Kirk (3B3)", cell)
}
