// Package roster holds the static configuration the board is built from: year groups, locations,
// teacher code overrides, manual conflicts and the external timetable feed.
package roster

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/idu-staffing-board/internal/models"
)

// Definition is the static input of the roster index.
type Definition struct {
	YearGroups      []models.YearGroup     `yaml:"year_groups"`
	SharedLocations []string               `yaml:"shared_locations"`
	YearLocations   map[string][]string    `yaml:"year_locations"`
	NameOverrides   []models.NameOverride  `yaml:"name_overrides"`
	ManualConflicts models.ManualConflicts `yaml:"manual_conflicts"`
	TimetableFeed   string                 `yaml:"-"`
}

// Load builds the definition from the optional roster and feed files, falling back to Default for whatever is not
// provided.
func Load(rosterPath, feedPath string) (Definition, error) {
	def := Default()

	if rosterPath != "" {
		raw, err := os.ReadFile(rosterPath)
		if err != nil {
			return Definition{}, fmt.Errorf("read roster file: %w", err)
		}
		parsed, err := Parse(raw)
		if err != nil {
			return Definition{}, err
		}
		parsed.TimetableFeed = def.TimetableFeed
		def = parsed
	}

	if feedPath != "" {
		raw, err := os.ReadFile(feedPath)
		if err != nil {
			return Definition{}, fmt.Errorf("read timetable feed: %w", err)
		}
		def.TimetableFeed = string(raw)
	}

	return def, nil
}

// Parse decodes a YAML roster document and validates it.
func Parse(raw []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return Definition{}, fmt.Errorf("decode roster: %w", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Validate rejects year groups and classes that would make slot keys ambiguous.
func (d Definition) Validate() error {
	if len(d.YearGroups) == 0 {
		return fmt.Errorf("roster has no year groups")
	}
	seen := make(map[string]struct{}, len(d.YearGroups))
	for _, group := range d.YearGroups {
		if strings.TrimSpace(group.ID) == "" {
			return fmt.Errorf("year group id is required")
		}
		if strings.Contains(group.ID, "-") {
			return fmt.Errorf("year group %q must not contain '-'", group.ID)
		}
		if _, dup := seen[group.ID]; dup {
			return fmt.Errorf("duplicate year group %q", group.ID)
		}
		seen[group.ID] = struct{}{}
		if len(group.Classes) == 0 {
			return fmt.Errorf("year group %q has no classes", group.ID)
		}
		for class := range group.ClassTeachers {
			if !group.HasClass(class) {
				return fmt.Errorf("year group %q maps teachers to unknown class %q", group.ID, class)
			}
		}
		for _, teacher := range group.Teachers {
			if strings.Contains(teacher, ",") {
				return fmt.Errorf("teacher %q must not contain ','", teacher)
			}
		}
	}
	return nil
}
