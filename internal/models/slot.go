package models

import (
	"fmt"
	"strings"
)

// Day is one of the five cyclic timetable days.
type Day string

// Block is a teaching period within a day.
type Block string

const (
	Day1 Day = "Day 1"
	Day2 Day = "Day 2"
	Day3 Day = "Day 3"
	Day4 Day = "Day 4"
	Day5 Day = "Day 5"

	Block1  Block = "Block 1"
	Block2  Block = "Block 2"
	Block3  Block = "Block 3"
	Block4  Block = "Block 4"
	BlockDT Block = "DT"
)

// Days lists the timetable days in display order.
var Days = []Day{Day1, Day2, Day3, Day4, Day5}

// Blocks lists the blocks of a day in display order.
var Blocks = []Block{Block1, Block2, Block3, Block4, BlockDT}

var weekdayNames = map[Day]string{
	Day1: "Monday",
	Day2: "Tuesday",
	Day3: "Wednesday",
	Day4: "Thursday",
	Day5: "Friday",
}

// ParseDay validates a day label.
func ParseDay(raw string) (Day, error) {
	d := Day(strings.TrimSpace(raw))
	for _, known := range Days {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown day %q", raw)
}

// ParseBlock validates a block label.
func ParseBlock(raw string) (Block, error) {
	b := Block(strings.TrimSpace(raw))
	for _, known := range Blocks {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown block %q", raw)
}

// Weekday returns the weekday name the day maps to in the shared spreadsheet.
func (d Day) Weekday() string {
	return weekdayNames[d]
}

// SlotKey identifies a (day, block, year group, class) slot. It is comparable and used directly as a map key.
type SlotKey struct {
	Day   Day
	Block Block
	Year  string
	Class string
}

// NewSlotKey builds and validates a slot key from raw labels.
func NewSlotKey(day, block, year, class string) (SlotKey, error) {
	d, err := ParseDay(day)
	if err != nil {
		return SlotKey{}, err
	}
	b, err := ParseBlock(block)
	if err != nil {
		return SlotKey{}, err
	}
	key := SlotKey{Day: d, Block: b, Year: strings.TrimSpace(year), Class: strings.TrimSpace(class)}
	if err := key.Validate(); err != nil {
		return SlotKey{}, err
	}
	return key, nil
}

// Validate checks that the key can be rendered and parsed back without ambiguity.
// The class is the last field, so only the year must stay free of the delimiter.
func (k SlotKey) Validate() error {
	if _, err := ParseDay(string(k.Day)); err != nil {
		return err
	}
	if _, err := ParseBlock(string(k.Block)); err != nil {
		return err
	}
	if k.Year == "" {
		return fmt.Errorf("year group is required")
	}
	if strings.Contains(k.Year, "-") {
		return fmt.Errorf("year group %q must not contain '-'", k.Year)
	}
	if k.Class == "" {
		return fmt.Errorf("class is required")
	}
	return nil
}

// String renders the external form "{day}-{block}-{year}-{class}" used by the backing store.
func (k SlotKey) String() string {
	return string(k.Day) + "-" + string(k.Block) + "-" + k.Year + "-" + k.Class
}

// SameTime reports whether the key falls in the given day and block.
func (k SlotKey) SameTime(day Day, block Block) bool {
	return k.Day == day && k.Block == block
}

// ParseSlotKey is the inverse of SlotKey.String.
func ParseSlotKey(raw string) (SlotKey, error) {
	parts := strings.SplitN(raw, "-", 4)
	if len(parts) != 4 {
		return SlotKey{}, fmt.Errorf("malformed slot key %q", raw)
	}
	key := SlotKey{Day: Day(parts[0]), Block: Block(parts[1]), Year: parts[2], Class: parts[3]}
	if err := key.Validate(); err != nil {
		return SlotKey{}, fmt.Errorf("malformed slot key %q: %w", raw, err)
	}
	return key, nil
}

// MarshalText lets slot keys be used as JSON object keys.
func (k SlotKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the external key form.
func (k *SlotKey) UnmarshalText(text []byte) error {
	parsed, err := ParseSlotKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
