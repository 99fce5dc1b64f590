package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/idu-staffing-board/internal/models"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
)

const (
	groupFifthFloor  = "5th Floor"
	groupFourthFloor = "4th Floor"
	groupThirdFloor  = "3rd Floor"
	groupSecondFloor = "2nd Floor"
	groupLowerGround = "Lower Ground / 1st"
	groupOther       = "Other Locations"
)

var locationGroupOrder = []string{
	groupFifthFloor, groupFourthFloor, groupThirdFloor, groupSecondFloor, groupLowerGround, groupOther,
}

// LocationService presents the room catalogue grouped by floor.
type LocationService struct {
	roster *RosterIndex
}

// NewLocationService constructs the service.
func NewLocationService(roster *RosterIndex) *LocationService {
	return &LocationService{roster: roster}
}

// Catalogue lists the locations offered to a year group. An empty year returns every known location.
func (s *LocationService) Catalogue(year string) (*models.LocationCatalogue, error) {
	catalogue := &models.LocationCatalogue{Shared: s.roster.SharedLocations()}
	var all []string
	if year == "" {
		all = s.roster.AllLocations()
	} else {
		if _, ok := s.roster.YearGroup(year); !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("year group %q not found", year))
		}
		catalogue.YearSpecific = s.roster.YearLocations(year)
		all = dedupe(append(append([]string(nil), catalogue.Shared...), catalogue.YearSpecific...))
	}
	catalogue.Groups = GroupLocations(all)
	return catalogue, nil
}

// GroupLocations buckets locations by floor prefix and returns non-empty groups in fixed order.
func GroupLocations(locations []string) []models.LocationGroup {
	buckets := make(map[string][]string, len(locationGroupOrder))
	for _, loc := range locations {
		group := locationGroup(loc)
		buckets[group] = append(buckets[group], loc)
	}
	groups := make([]models.LocationGroup, 0, len(buckets))
	for _, name := range locationGroupOrder {
		if locs := buckets[name]; len(locs) > 0 {
			groups = append(groups, models.LocationGroup{Name: name, Locations: locs})
		}
	}
	return groups
}

func locationGroup(loc string) string {
	switch {
	case strings.HasPrefix(loc, "5"):
		return groupFifthFloor
	case strings.HasPrefix(loc, "4"):
		return groupFourthFloor
	case strings.HasPrefix(loc, "3"):
		return groupThirdFloor
	case strings.HasPrefix(loc, "2"):
		return groupSecondFloor
	case strings.HasPrefix(loc, "LF"), strings.Contains(loc, "Lower Ground"), strings.Contains(loc, "LE1"):
		return groupLowerGround
	default:
		return groupOther
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
