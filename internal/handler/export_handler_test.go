package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/idu-staffing-board/internal/dto"
	"github.com/noah-isme/idu-staffing-board/internal/service"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
)

type exporterMock struct {
	query dto.ExportQuery
	err   error
}

func (m *exporterMock) Export(query dto.ExportQuery) (*service.ExportFile, error) {
	m.query = query
	if m.err != nil {
		return nil, m.err
	}
	return &service.ExportFile{Filename: "idu-staffing_day-2_20260112.csv", ContentType: "text/csv", Body: []byte("Year,Class\n")}, nil
}

func TestExportHandlerStreamsAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := &exporterMock{}
	h := NewExportHandler(exporter)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/export/board?day=Day+2&format=csv", nil)
	h.Board(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ExportQuery{Day: "Day 2", Format: "csv"}, exporter.query)
	assert.Equal(t, `attachment; filename="idu-staffing_day-2_20260112.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Year,Class\n", w.Body.String())
}

func TestExportHandlerPropagatesValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(&exporterMock{err: appErrors.Clone(appErrors.ErrValidation, "unsupported format docx")})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/export/board?format=docx", nil)
	h.Board(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
