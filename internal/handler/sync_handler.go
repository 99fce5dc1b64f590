package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/idu-staffing-board/internal/dto"
	"github.com/noah-isme/idu-staffing-board/internal/models"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
	"github.com/noah-isme/idu-staffing-board/pkg/response"
)

type boardLoader interface {
	Refresh(ctx context.Context) error
	LastLoadedAt() *time.Time
}

type syncStatusReader interface {
	Overview() models.SyncOverview
}

type syncSettingsService interface {
	Current() dto.SyncSettingsResponse
	Update(ctx context.Context, req dto.SyncSettingsRequest) (dto.SyncSettingsResponse, error)
}

// SyncHandler exposes the backing store synchronisation controls.
type SyncHandler struct {
	board    boardLoader
	status   syncStatusReader
	settings syncSettingsService
}

// NewSyncHandler constructs the handler.
func NewSyncHandler(board boardLoader, status syncStatusReader, settings syncSettingsService) *SyncHandler {
	return &SyncHandler{board: board, status: status, settings: settings}
}

// Refresh godoc
// @Summary Reload the board from the backing store
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope "No Script URL configured"
// @Router /sync/refresh [post]
func (h *SyncHandler) Refresh(c *gin.Context) {
	if err := h.board.Refresh(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.overview())
}

// Status godoc
// @Summary Per-slot delivery state
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sync/status [get]
func (h *SyncHandler) Status(c *gin.Context) {
	response.OK(c, h.overview())
}

// Settings godoc
// @Summary Active sync settings
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sync/settings [get]
func (h *SyncHandler) Settings(c *gin.Context) {
	response.OK(c, h.settings.Current())
}

// UpdateSettings godoc
// @Summary Replace the spreadsheet web app URL and reload
// @Tags Sync
// @Accept json
// @Produce json
// @Param payload body dto.SyncSettingsRequest true "Settings"
// @Success 200 {object} response.Envelope
// @Router /sync/settings [put]
func (h *SyncHandler) UpdateSettings(c *gin.Context) {
	var req dto.SyncSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings payload"))
		return
	}
	settings, err := h.settings.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, settings)
}

func (h *SyncHandler) overview() models.SyncOverview {
	overview := h.status.Overview()
	overview.LastLoadedAt = h.board.LastLoadedAt()
	return overview
}
