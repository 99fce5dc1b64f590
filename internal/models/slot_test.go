package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotKeyStringRoundTrip(t *testing.T) {
	cases := []SlotKey{
		{Day: Day1, Block: Block1, Year: "Year 7", Class: "7.1"},
		{Day: Day5, Block: BlockDT, Year: "Year 11", Class: "DES+INS (PH2C+SXPH3A)"},
		{Day: Day3, Block: Block4, Year: "Year 10 (Order in Chaos)", Class: "TH + MA"},
		{Day: Day2, Block: Block2, Year: "Year 8", Class: "odd-class-name"},
	}
	for _, key := range cases {
		parsed, err := ParseSlotKey(key.String())
		require.NoError(t, err)
		assert.Equal(t, key, parsed)
	}
}

func TestSlotKeyExternalForm(t *testing.T) {
	key, err := NewSlotKey("Day 1", "Block 1", "Year 7", "7.1")
	require.NoError(t, err)
	assert.Equal(t, "Day 1-Block 1-Year 7-7.1", key.String())
}

func TestNewSlotKeyRejectsInvalidInput(t *testing.T) {
	_, err := NewSlotKey("Day 6", "Block 1", "Year 7", "7.1")
	assert.Error(t, err)
	_, err = NewSlotKey("Day 1", "Block 9", "Year 7", "7.1")
	assert.Error(t, err)
	_, err = NewSlotKey("Day 1", "Block 1", "Year-7", "7.1")
	assert.Error(t, err)
	_, err = NewSlotKey("Day 1", "Block 1", "Year 7", " ")
	assert.Error(t, err)
}

func TestParseSlotKeyRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "Day 1", "Day 1-Block 1-Year 7", "Monday-Block 1-Year 7-7.1"} {
		_, err := ParseSlotKey(raw)
		assert.Error(t, err, raw)
	}
}

func TestSlotKeyAsJSONMapKey(t *testing.T) {
	key := SlotKey{Day: Day2, Block: Block3, Year: "Year 9 (Bonding)", Class: "9.4"}
	board := NewBoard()
	board.Assignments[key] = []string{"Dai Pugh"}
	board.Locations[key] = map[string]string{"Dai Pugh": "3A1"}

	raw, err := json.Marshal(board)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Day 2-Block 3-Year 9 (Bonding)-9.4"`)

	decoded := NewBoard()
	require.NoError(t, json.Unmarshal(raw, decoded))
	assert.Equal(t, []string{"Dai Pugh"}, decoded.Assignments[key])
	assert.Equal(t, "3A1", decoded.Locations[key]["Dai Pugh"])
}

func TestDayWeekday(t *testing.T) {
	assert.Equal(t, "Monday", Day1.Weekday())
	assert.Equal(t, "Friday", Day5.Weekday())
}
