package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/idu-staffing-board/internal/dto"
	"github.com/noah-isme/idu-staffing-board/internal/models"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
	"github.com/noah-isme/idu-staffing-board/pkg/export"
)

type dayBoardSource interface {
	DayBoard(day models.Day) models.DayBoard
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(sheets []export.Sheet) ([]byte, error)
}

// ExportFile is a rendered export ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders day boards for printing and sharing.
type ExportService struct {
	board  dayBoardSource
	csv    csvRenderer
	pdf    pdfRenderer
	xlsx   xlsxRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(board dayBoardSource, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer, xlsx xlsxRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if xlsx == nil {
		xlsx = export.NewXLSXExporter()
	}
	return &ExportService{board: board, csv: csv, pdf: pdf, xlsx: xlsx, logger: logger, now: time.Now}
}

// Export renders the requested format. CSV and PDF cover one day; XLSX carries one sheet per day and ignores day.
func (s *ExportService) Export(query dto.ExportQuery) (*ExportFile, error) {
	format := strings.ToLower(query.Format)
	if format == "" {
		format = dto.ExportFormatCSV
	}

	if format == dto.ExportFormatXLSX {
		sheets := make([]export.Sheet, 0, len(models.Days))
		for _, day := range models.Days {
			sheets = append(sheets, export.Sheet{Name: day.Weekday(), Data: dayDataset(s.board.DayBoard(day))})
		}
		body, err := s.xlsx.Render(sheets)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render workbook")
		}
		return &ExportFile{
			Filename:    s.filename("week", format),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        body,
		}, nil
	}

	rawDay := query.Day
	if rawDay == "" {
		rawDay = string(models.Day1)
	}
	day, err := models.ParseDay(rawDay)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	dataset := dayDataset(s.board.DayBoard(day))

	var (
		body        []byte
		contentType string
	)
	switch format {
	case dto.ExportFormatCSV:
		body, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case dto.ExportFormatPDF:
		body, err = s.pdf.Render(dataset, fmt.Sprintf("IDU Staffing - %s (%s)", day, day.Weekday()))
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %s", query.Format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.logger.Debug("board exported", zap.String("day", string(day)), zap.String("format", format), zap.Int("bytes", len(body)))
	return &ExportFile{Filename: s.filename(string(day), format), ContentType: contentType, Body: body}, nil
}

func (s *ExportService) filename(scope, format string) string {
	scope = strings.ToLower(strings.ReplaceAll(scope, " ", "-"))
	return fmt.Sprintf("idu-staffing_%s_%s.%s", scope, s.now().UTC().Format("20060102"), format)
}

func dayDataset(board models.DayBoard) export.Dataset {
	headers := []string{"Year", "Class"}
	for _, block := range models.Blocks {
		headers = append(headers, string(block))
	}
	rows := make([]map[string]string, 0, len(board.Rows))
	for _, row := range board.Rows {
		record := map[string]string{"Year": row.Year, "Class": row.Class}
		for _, block := range models.Blocks {
			record[string(block)] = formatCell(row.Blocks[block])
		}
		rows = append(rows, record)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func formatCell(teachers []models.SlotTeacher) string {
	lines := make([]string, 0, len(teachers))
	for _, t := range teachers {
		line := t.Name
		if t.Location != "" {
			line = fmt.Sprintf("%s (%s)", t.Name, t.Location)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
