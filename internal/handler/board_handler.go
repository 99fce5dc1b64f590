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

type boardService interface {
	Snapshot() *models.Board
	LastLoadedAt() *time.Time
	Slot(ctx context.Context, query dto.SlotQuery) (*models.SlotView, error)
	AssignTeacher(ctx context.Context, req dto.TeacherAssignmentRequest) (*models.SlotView, error)
	UnassignTeacher(ctx context.Context, req dto.TeacherAssignmentRequest) (*models.SlotView, error)
	AssignLocation(ctx context.Context, req dto.LocationAssignmentRequest) (*models.SlotView, error)
}

// BoardHandler exposes the assignment board.
type BoardHandler struct {
	service boardService
}

// NewBoardHandler constructs the handler.
func NewBoardHandler(service boardService) *BoardHandler {
	return &BoardHandler{service: service}
}

// Get godoc
// @Summary Full assignment board
// @Tags Board
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /board [get]
func (h *BoardHandler) Get(c *gin.Context) {
	board := h.service.Snapshot()
	meta := map[string]interface{}{"slots": len(board.Keys())}
	if loaded := h.service.LastLoadedAt(); loaded != nil {
		meta["lastLoadedAt"] = loaded
	}
	response.OK(c, board, meta)
}

// Slot godoc
// @Summary Single slot with teachers, locations and DP conflicts
// @Tags Board
// @Produce json
// @Param day query string true "Day, e.g. Day 1"
// @Param block query string true "Block, e.g. Block 1"
// @Param year query string true "Year group ID"
// @Param class query string true "Class"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /board/slot [get]
func (h *BoardHandler) Slot(c *gin.Context) {
	var query dto.SlotQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot query"))
		return
	}
	view, err := h.service.Slot(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// Assign godoc
// @Summary Drop a teacher onto a slot
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body dto.TeacherAssignmentRequest true "Assignment"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /board/assignments [post]
func (h *BoardHandler) Assign(c *gin.Context) {
	var req dto.TeacherAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	view, err := h.service.AssignTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view, editorMeta(c))
}

// Unassign godoc
// @Summary Remove a teacher from a slot
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body dto.TeacherAssignmentRequest true "Assignment"
// @Success 200 {object} response.Envelope
// @Router /board/assignments [delete]
func (h *BoardHandler) Unassign(c *gin.Context) {
	var req dto.TeacherAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	view, err := h.service.UnassignTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view, editorMeta(c))
}

// AssignLocation godoc
// @Summary Set the location a teacher uses in a slot
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body dto.LocationAssignmentRequest true "Location assignment"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /board/locations [put]
func (h *BoardHandler) AssignLocation(c *gin.Context) {
	var req dto.LocationAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid location payload"))
		return
	}
	view, err := h.service.AssignLocation(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view, editorMeta(c))
}
