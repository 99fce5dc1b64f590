package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/idu-staffing-board/internal/dto"
	"github.com/noah-isme/idu-staffing-board/internal/models"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
	"github.com/noah-isme/idu-staffing-board/pkg/response"
)

type yearGroupLister interface {
	YearGroups() []models.YearGroup
}

type sidebarService interface {
	Sidebar(ctx context.Context, query dto.SidebarQuery) ([]models.TeacherChip, error)
}

type locationCatalogue interface {
	Catalogue(year string) (*models.LocationCatalogue, error)
}

// RosterHandler serves the static roster and the sidebar derived from it.
type RosterHandler struct {
	roster    yearGroupLister
	sidebar   sidebarService
	locations locationCatalogue
}

// NewRosterHandler constructs the handler.
func NewRosterHandler(roster yearGroupLister, sidebar sidebarService, locations locationCatalogue) *RosterHandler {
	return &RosterHandler{roster: roster, sidebar: sidebar, locations: locations}
}

// YearGroups godoc
// @Summary Year groups with classes and teacher rosters
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster/year-groups [get]
func (h *RosterHandler) YearGroups(c *gin.Context) {
	response.OK(c, h.roster.YearGroups())
}

// Sidebar godoc
// @Summary Teacher chips for a year group
// @Tags Roster
// @Produce json
// @Param year query string true "Year group ID"
// @Param day query string true "Day"
// @Param block query string false "Block (required in byBlock view)"
// @Param class query string false "Class (byClass view)"
// @Param view query string false "byBlock or byClass"
// @Success 200 {object} response.Envelope
// @Router /roster/sidebar [get]
func (h *RosterHandler) Sidebar(c *gin.Context) {
	var query dto.SidebarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid sidebar query"))
		return
	}
	chips, err := h.sidebar.Sidebar(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, chips, map[string]interface{}{"count": len(chips)})
}

// Locations godoc
// @Summary Location catalogue grouped by floor
// @Tags Roster
// @Produce json
// @Param year query string false "Year group ID"
// @Success 200 {object} response.Envelope
// @Router /locations [get]
func (h *RosterHandler) Locations(c *gin.Context) {
	catalogue, err := h.locations.Catalogue(c.Query("year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, catalogue)
}
