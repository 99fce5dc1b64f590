package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/idu-staffing-board/internal/models"
	"github.com/noah-isme/idu-staffing-board/internal/roster"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
)

func TestGroupLocationsFixedOrder(t *testing.T) {
	groups := GroupLocations([]string{"Theatre", "2C2", "LF1", "5E2", "3A1", "LE1/LD1", "4C1", "Lower Ground Floor Court", "5B1"})

	assert.Equal(t, []models.LocationGroup{
		{Name: "5th Floor", Locations: []string{"5E2", "5B1"}},
		{Name: "4th Floor", Locations: []string{"4C1"}},
		{Name: "3rd Floor", Locations: []string{"3A1"}},
		{Name: "2nd Floor", Locations: []string{"2C2"}},
		{Name: "Lower Ground / 1st", Locations: []string{"LF1", "LE1/LD1", "Lower Ground Floor Court"}},
		{Name: "Other Locations", Locations: []string{"Theatre"}},
	}, groups)
}

func TestGroupLocationsSkipsEmptyGroups(t *testing.T) {
	groups := GroupLocations([]string{"Library"})
	require.Len(t, groups, 1)
	assert.Equal(t, "Other Locations", groups[0].Name)
	assert.Empty(t, GroupLocations(nil))
}

func TestLocationCatalogue(t *testing.T) {
	svc := NewLocationService(BuildRosterIndex(roster.Default()))

	catalogue, err := svc.Catalogue("Year 7")
	require.NoError(t, err)
	assert.Equal(t, []string{"3C3", "3C4", "5B1", "5E1"}, catalogue.YearSpecific)
	assert.Contains(t, catalogue.Shared, "Theatre")
	assert.Equal(t, "5th Floor", catalogue.Groups[0].Name)

	all, err := svc.Catalogue("")
	require.NoError(t, err)
	assert.Empty(t, all.YearSpecific)
	total := 0
	for _, g := range all.Groups {
		total += len(g.Locations)
	}
	assert.Greater(t, total, len(catalogue.Shared)+len(catalogue.YearSpecific))

	_, err = svc.Catalogue("Year 42")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
