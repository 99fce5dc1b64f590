package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/idu-staffing-board/internal/dto"
	"github.com/noah-isme/idu-staffing-board/internal/service"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
	"github.com/noah-isme/idu-staffing-board/pkg/response"
)

type boardExporter interface {
	Export(query dto.ExportQuery) (*service.ExportFile, error)
}

// ExportHandler streams printable board exports.
type ExportHandler struct {
	exports boardExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports boardExporter) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Board godoc
// @Summary Export a day board
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param day query string false "Day (csv and pdf)"
// @Param format query string false "csv, pdf or xlsx"
// @Success 200 {file} binary
// @Router /exports/board [get]
func (h *ExportHandler) Board(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}
	file, err := h.exports.Export(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
