package models

import (
	"encoding/json"
	"sort"
)

// AssignmentMap maps a slot to its teachers in drop order.
type AssignmentMap map[SlotKey][]string

// LocationAssignmentMap maps a slot to the location each teacher uses in it.
type LocationAssignmentMap map[SlotKey]map[string]string

// Board is the in-memory assignment store.
type Board struct {
	Assignments AssignmentMap         `json:"assignments"`
	Locations   LocationAssignmentMap `json:"locations"`
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{Assignments: AssignmentMap{}, Locations: LocationAssignmentMap{}}
}

// Teachers returns a copy of the slot's teacher list.
func (b *Board) Teachers(key SlotKey) []string {
	if b == nil {
		return []string{}
	}
	current := b.Assignments[key]
	out := make([]string, len(current))
	copy(out, current)
	return out
}

// SlotLocations returns a copy of the slot's teacher -> location map.
func (b *Board) SlotLocations(key SlotKey) map[string]string {
	out := map[string]string{}
	if b == nil {
		return out
	}
	for teacher, loc := range b.Locations[key] {
		out[teacher] = loc
	}
	return out
}

// Write captures the slot as it should be sent to the backing store.
func (b *Board) Write(key SlotKey) SlotWrite {
	return SlotWrite{Key: key, Teachers: b.Teachers(key), Locations: b.SlotLocations(key)}
}

// Clone deep-copies the board.
func (b *Board) Clone() *Board {
	out := NewBoard()
	if b == nil {
		return out
	}
	for key := range b.Assignments {
		out.Assignments[key] = b.Teachers(key)
	}
	for key := range b.Locations {
		out.Locations[key] = b.SlotLocations(key)
	}
	return out
}

// Keys returns every slot key present in either map, ordered by their external form.
func (b *Board) Keys() []SlotKey {
	seen := make(map[SlotKey]struct{})
	for key := range b.Assignments {
		seen[key] = struct{}{}
	}
	for key := range b.Locations {
		seen[key] = struct{}{}
	}
	keys := make([]SlotKey, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// SlotWrite is a snapshot of one slot submitted to the backing store.
type SlotWrite struct {
	Key       SlotKey           `json:"key"`
	Teachers  []string          `json:"teachers"`
	Locations map[string]string `json:"locations"`
}

// Empty reports whether the slot carries no data.
func (w SlotWrite) Empty() bool {
	return len(w.Teachers) == 0 && len(w.Locations) == 0
}

// LocationsJSON serialises the location map as the backing store expects it.
func (w SlotWrite) LocationsJSON() string {
	if len(w.Locations) == 0 {
		return "{}"
	}
	raw, err := json.Marshal(w.Locations)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
