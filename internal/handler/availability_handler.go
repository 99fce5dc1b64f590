package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/idu-staffing-board/internal/dto"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
	"github.com/noah-isme/idu-staffing-board/pkg/response"
)

type availabilityService interface {
	TeacherAvailability(query dto.TeacherAvailabilityQuery) (*dto.TeacherAvailabilityResponse, error)
	LocationAvailability(query dto.LocationAvailabilityQuery) (*dto.LocationAvailabilityResponse, error)
}

// AvailabilityHandler answers drag-start availability checks.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Teacher godoc
// @Summary Teacher busy state and DP conflict
// @Tags Availability
// @Produce json
// @Param teacher query string true "Teacher full name"
// @Param day query string true "Day"
// @Param block query string true "Block"
// @Success 200 {object} response.Envelope
// @Router /availability/teacher [get]
func (h *AvailabilityHandler) Teacher(c *gin.Context) {
	var query dto.TeacherAvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability query"))
		return
	}
	result, err := h.service.TeacherAvailability(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Location godoc
// @Summary Location busy state
// @Tags Availability
// @Produce json
// @Param location query string true "Location"
// @Param day query string true "Day"
// @Param block query string true "Block"
// @Success 200 {object} response.Envelope
// @Router /availability/location [get]
func (h *AvailabilityHandler) Location(c *gin.Context) {
	var query dto.LocationAvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability query"))
		return
	}
	result, err := h.service.LocationAvailability(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
