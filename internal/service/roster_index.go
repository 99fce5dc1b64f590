package service

import (
	"strings"

	"github.com/noah-isme/idu-staffing-board/internal/models"
	"github.com/noah-isme/idu-staffing-board/internal/roster"
)

// TeacherNameIndex maps teacher short codes to display names and back.
//
// Collisions are not reported: the last write wins, with derived codes written before overrides and overrides
// applied in table order.
type TeacherNameIndex struct {
	codeToName map[string]string
	nameToCode map[string]string
	overrides  []models.NameOverride
}

// NewTeacherNameIndex derives a code for every rostered teacher and then applies the overrides bidirectionally.
func NewTeacherNameIndex(groups []models.YearGroup, overrides []models.NameOverride) *TeacherNameIndex {
	idx := &TeacherNameIndex{
		codeToName: make(map[string]string),
		nameToCode: make(map[string]string),
		overrides:  append([]models.NameOverride(nil), overrides...),
	}

	explicit := make(map[string]string, len(overrides))
	for _, o := range overrides {
		if _, seen := explicit[o.FullName]; !seen {
			explicit[o.FullName] = o.Code
		}
	}

	for _, group := range groups {
		for _, fullName := range group.Teachers {
			code, ok := explicit[fullName]
			if !ok {
				code = firstToken(fullName)
			}
			idx.codeToName[code] = fullName
			idx.nameToCode[fullName] = code
		}
	}

	for _, o := range overrides {
		idx.codeToName[o.Code] = o.FullName
		idx.nameToCode[o.FullName] = o.Code
	}

	return idx
}

// FullName resolves a code to a display name.
func (i *TeacherNameIndex) FullName(code string) (string, bool) {
	name, ok := i.codeToName[code]
	return name, ok
}

// Code resolves a display name to its code.
func (i *TeacherNameIndex) Code(fullName string) (string, bool) {
	code, ok := i.nameToCode[fullName]
	return code, ok
}

// ReverseLookup returns the full name of the first override whose code equals code.
func (i *TeacherNameIndex) ReverseLookup(code string) (string, bool) {
	for _, o := range i.overrides {
		if o.Code == code {
			return o.FullName, true
		}
	}
	return "", false
}

func firstToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[0]
}

// RosterIndex is the immutable lookup structure built from the static roster definition.
type RosterIndex struct {
	groupIDs        []string
	groups          map[string]models.YearGroup
	names           *TeacherNameIndex
	sharedLocations []string
	yearLocations   map[string][]string
	locations       map[string]struct{}
	manual          models.ManualConflicts
}

// BuildRosterIndex constructs the index once from the definition.
func BuildRosterIndex(def roster.Definition) *RosterIndex {
	idx := &RosterIndex{
		groups:          make(map[string]models.YearGroup, len(def.YearGroups)),
		names:           NewTeacherNameIndex(def.YearGroups, def.NameOverrides),
		sharedLocations: append([]string(nil), def.SharedLocations...),
		yearLocations:   make(map[string][]string, len(def.YearLocations)),
		locations:       make(map[string]struct{}),
		manual:          make(models.ManualConflicts, len(def.ManualConflicts)),
	}
	for _, group := range def.YearGroups {
		idx.groupIDs = append(idx.groupIDs, group.ID)
		idx.groups[group.ID] = group
	}
	for _, loc := range def.SharedLocations {
		idx.locations[loc] = struct{}{}
	}
	for year, locs := range def.YearLocations {
		idx.yearLocations[year] = append([]string(nil), locs...)
		for _, loc := range locs {
			idx.locations[loc] = struct{}{}
		}
	}
	for teacher, slots := range def.ManualConflicts {
		idx.manual[teacher] = append([]string(nil), slots...)
	}
	return idx
}

// Names exposes the teacher name index.
func (r *RosterIndex) Names() *TeacherNameIndex {
	return r.names
}

// ManualConflicts returns the manual conflict table.
func (r *RosterIndex) ManualConflicts() models.ManualConflicts {
	return r.manual
}

// YearGroups returns the year groups in configuration order.
func (r *RosterIndex) YearGroups() []models.YearGroup {
	out := make([]models.YearGroup, 0, len(r.groupIDs))
	for _, id := range r.groupIDs {
		out = append(out, r.groups[id])
	}
	return out
}

// YearGroup looks up a year group by ID.
func (r *RosterIndex) YearGroup(id string) (models.YearGroup, bool) {
	group, ok := r.groups[id]
	return group, ok
}

// HasLocation reports whether the location is known.
func (r *RosterIndex) HasLocation(location string) bool {
	_, ok := r.locations[location]
	return ok
}

// SharedLocations lists the locations open to every year group.
func (r *RosterIndex) SharedLocations() []string {
	return append([]string(nil), r.sharedLocations...)
}

// YearLocations lists the rooms reserved for a year group.
func (r *RosterIndex) YearLocations(year string) []string {
	return append([]string(nil), r.yearLocations[year]...)
}

// AllLocations lists shared locations followed by every year-specific room, without duplicates.
func (r *RosterIndex) AllLocations() []string {
	seen := make(map[string]struct{}, len(r.locations))
	out := make([]string, 0, len(r.locations))
	add := func(loc string) {
		if _, dup := seen[loc]; dup {
			return
		}
		seen[loc] = struct{}{}
		out = append(out, loc)
	}
	for _, loc := range r.sharedLocations {
		add(loc)
	}
	for _, id := range r.groupIDs {
		for _, loc := range r.yearLocations[id] {
			add(loc)
		}
	}
	return out
}
