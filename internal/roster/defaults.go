package roster

import (
	_ "embed"

	"github.com/noah-isme/idu-staffing-board/internal/models"
)

//go:embed timetable.csv
var defaultTimetableFeed string

// Default returns the built-in roster for the January IDU week.
func Default() Definition {
	return Definition{
		YearGroups: []models.YearGroup{
			{
				ID:       "Year 7",
				Name:     "Game for a Better Future",
				Classes:  []string{"7.1", "7.2", "7.3", "7.4"},
				Teachers: []string{"Tod Baker", "Jemma Millar", "Barry Wilkinson", "Claire Neale", "Myra Pyne", "Jonathan Simpson", "Kellie Berry", "Mark Jobling", "Sarah Jolly", "Alastair Mack"},
			},
			{
				ID:       "Year 8",
				Name:     "Healthy Habits for a Happy Life",
				Classes:  []string{"8.1", "8.2", "8.3", "8.4"},
				Teachers: []string{"Steve Bolton", "Alan Kirk", "Gwylim Richards", "Tuomas Virret", "Aj Lim", "Natalie Fong", "Rachel Yu", "Beverley O'Gorman", "Mark Mackenzie", "Akina Lam"},
			},
			{
				ID:       "Year 9 (Bonding)",
				Name:     "Bonding Community in the Amazing Race",
				Classes:  []string{"9.1", "9.2", "9.3", "9.4"},
				Teachers: []string{"Annette Garnett", "Amy Prosser", "Peter de Wet", "Dai Pugh", "Nigel Philip", "Paul McGoey", "Martina O'Connor", "Fiona Tate", "Christopher Ryan"},
			},
			{
				ID:      "Year 10 (Order in Chaos)",
				Name:    "Order in Chaos",
				Classes: []string{"VA+MA", "MU+MA", "TH + MA", "MS + MA"},
				Teachers: []string{
					"Ethan Lester", "Jane Mitchell", "Kevin Rydeard", "Shija Godfrey",
					"Megan Gibson", "Matt Davis", "Rosie Horogoda",
					"Sarah Sweetman", "Line Turagaiviu", "Nicola Grant", "Penny Joshi",
					"Danielle Veilleux", "Vanessa Viirret", "Meena Venkatasubramanian", "Jasmine Peralta",
				},
				ClassTeachers: map[string][]string{
					"VA+MA":   {"Ethan Lester", "Jane Mitchell", "Kevin Rydeard", "Shija Godfrey"},
					"MU+MA":   {"Megan Gibson", "Matt Davis", "Rosie Horogoda"},
					"TH + MA": {"Sarah Sweetman", "Line Turagaiviu", "Nicola Grant", "Penny Joshi"},
					"MS + MA": {"Danielle Veilleux", "Vanessa Viirret", "Meena Venkatasubramanian", "Jasmine Peralta"},
				},
			},
			{
				ID:   "Year 11",
				Name: "Hong Kong Explore",
				Classes: []string{
					"DES+INS (PH2C+SXPH3A)",
					"CLL+INS",
					"PH3B&3C+INS",
					"PH4B&5A+INS",
				},
				Teachers: []string{
					"Maggie Lee", "Patgee Szeto", "Simon Man", "Danny Shih Kwun Shun", "Candice Chen",
					"Valerie Mao", "Elaine Leung", "Daniel Hansson", "Andrew Clendinning", "Michael Glavanis",
					"Raina Zhaparova", "Holy Yoong", "Chantelle De Wet", "Laura Motta", "Tom Lee",
					"Eugene Tasker", "Tania Tasker", "Kelly Chak-Mark", "Jessie Cheng",
				},
				ClassTeachers: map[string][]string{
					"DES+INS (PH2C+SXPH3A)": {"Eugene Tasker", "Tom Lee", "Tania Tasker", "Chantelle De Wet"},
					"CLL+INS":               {"Simon Man", "Danny Shih Kwun Shun", "Daniel Hansson", "Maggie Lee"},
					"PH3B&3C+INS":           {"Valerie Mao", "Elaine Leung", "Andrew Clendinning", "Patgee Szeto", "Kelly Chak-Mark"},
					"PH4B&5A+INS":           {"Raina Zhaparova", "Michael Glavanis", "Candice Chen", "Holy Yoong", "Laura Motta", "Jessie Cheng"},
				},
			},
		},
		SharedLocations: []string{
			"Primary Sports Hall",
			"2nd Floor Gym",
			"Lower Ground Floor Court",
			"Foreshore Small",
			"Foreshore Large",
			"Theatre",
			"Dance Studio LF2",
			"Library",
			"2C2", "2C3", "2C4",
			"3A3", "3A4", "3F1",
		},
		YearLocations: map[string][]string{
			"Year 7":                   {"3C3", "3C4", "5B1", "5E1"},
			"Year 8":                   {"3B3", "3C2", "3D1", "4C1"},
			"Year 9 (Bonding)":         {"3A1", "3A2", "3B1", "3B2"},
			"Year 10 (Order in Chaos)": {"5E2", "LE1/LD1", "LF1", "5D2", "3F2"},
			"Year 11":                  {"4B2", "4C1", "2B3"},
		},
		NameOverrides: []models.NameOverride{
			{Code: "AL", FullName: "Aj Lim"},
			{Code: "CAL", FullName: "Akina Lam"},
			{Code: "AKK", FullName: "Alan Kirk"},
			{Code: "AMK", FullName: "Alastair Mack"},
			{Code: "ABC", FullName: "Andrew Clendinning"},
			{Code: "BWN", FullName: "Barry Wilkinson"},
			{Code: "DVX", FullName: "Danielle Veilleux"},
			{Code: "NPP", FullName: "Nigel Philip"},
			{Code: "OAC", FullName: "Obdulio Fonseca"},
			{Code: "PMY", FullName: "Paul McGoey"},
			{Code: "PSO", FullName: "Patgee Szeto"},
			{Code: "TB", FullName: "Tod Baker"},
			{Code: "Aj", FullName: "Aj Lim"},
			{Code: "CD", FullName: "Charles"},
			{Code: "RH", FullName: "Rosie"},
			{Code: "BH", FullName: "Bella"},
			{Code: "CG", FullName: "Craig"},
			{Code: "AT", FullName: "Adam"},
		},
		ManualConflicts: models.ManualConflicts{
			"Aj Lim":                   {"Day 1-Block 3", "Day 1-DT", "Day 1-Block 4", "Day 2-Block 1", "Day 5-Block 1"},
			"Andrew Clendinning":       {"Day 2-Block 2", "Day 4-Block 3"},
			"Alan Kirk":                {"Day 2-Block 1", "Day 2-Block 2", "Day 4-Block 2", "Day 4-Block 3", "Day 5-DT"},
			"Alastair Mack":            {"Day 2-Block 2", "Day 2-Block 4", "Day 4-Block 1", "Day 4-Block 3"},
			"Beverley O'Gorman":        {"Day 1-Block 1", "Day 3-Block 4", "Day 5-Block 2"},
			"Barry Wilkinson":          {"Day 1-Block 3", "Day 3-Block 4", "Day 5-Block 4", "Day 5-DT"},
			"Chantelle De Wet":         {"Day 2-Block 4", "Day 4-Block 1"},
			"Akina Lam":                {"Day 1-Block 2", "Day 3-Block 3", "Day 5-Block 3"},
			"Christopher Ryan":         {"Day 1-Block 4", "Day 1-DT", "Day 3-Block 1", "Day 5-Block 1"},
			"Dai Pugh":                 {"Day 1-Block 2", "Day 2-Block 3", "Day 3-Block 3", "Day 4-Block 3", "Day 4-DT", "Day 5-Block 3"},
			"Daniel Hansson":           {"Day 2-Block 1", "Day 2-Block 2", "Day 4-Block 2", "Day 4-Block 3"},
			"Danny Shih Kwun Shun":     {"Day 2-Block 3", "Day 4-Block 3", "Day 4-DT"},
			"Ethan Lester":             {"Day 2-Block 4", "Day 2-DT", "Day 4-Block 1"},
			"Elaine Leung":             {"Day 4-Block 1"},
			"Fiona Tate":               {"Day 1-Block 3", "Day 3-Block 4", "Day 5-Block 4"},
			"Gillian Whittaker":        {"Day 1-Block 1", "Day 3-Block 3", "Day 5-Block 2"},
			"Amy Yang":                 {"Day 1-Block 2", "Day 3-Block 3", "Day 5-Block 3"},
			"Amy Prosser":              {"Day 1-Block 2", "Day 3-Block 3", "Day 5-Block 3"},
			"Jonathan Simpson":         {"Day 1-Block 1", "Day 3-Block 2", "Day 5-Block 2"},
			"Kevin Rydeard":            {"Day 2-Block 2", "Day 4-Block 3"},
			"Line Turagaiviu":          {"Day 2-Block 4", "Day 2-DT", "Day 4-Block 1"},
			"Laura Motta":              {"Day 1-Block 2", "Day 2-Block 3", "Day 3-Block 3", "Day 4-Block 4", "Day 5-Block 3"},
			"Matt Davis":               {"Day 2-Block 3", "Day 4-Block 4", "Day 4-DT"},
			"Maggie Lee":               {"Day 1-Block 2", "Day 3-Block 3", "Day 5-Block 3"},
			"Mark Mackenzie":           {"Day 1-Block 1", "Day 3-Block 2", "Day 5-Block 2"},
			"Meena Venkatasubramanian": {"Day 2-Block 2", "Day 4-Block 3"},
			"Natalie Fong":             {"Day 1-Block 1", "Day 2-Block 2", "Day 5-Block 2"},
			"Nicola Grant":             {"Day 1-Block 4", "Day 2-Block 1", "Day 3-Block 1", "Day 4-Block 2", "Day 5-Block 1"},
			"Obdulio Fonseca":          {"Day 1-Block 2", "Day 3-Block 3", "Day 5-Block 3"},
			"Peter de Wet":             {"Day 1-Block 1", "Day 1-Block 3", "Day 3-Block 2", "Day 3-Block 4", "Day 5-Block 2", "Day 5-Block 4", "Day 5-DT"},
			"Paul McGoey":              {"Day 2-Block 2", "Day 4-Block 3"},
			"Rosie":                    {"Day 2-Block 4", "Day 4-Block 1"},
			"Raina Zhaparova":          {"Day 2-Block 1", "Day 2-Block 4", "Day 2-DT", "Day 4-Block 1"},
			"Steve Bolton":             {"Day 2-Block 3", "Day 4-Block 3", "Day 4-DT"},
			"Yu Shuizi Rachel":         {"Day 1-Block 4", "Day 1-DT", "Day 3-Block 1", "Day 5-Block 1"},
			"Sarah Jolly":              {"Day 1-Block 4", "Day 1-DT", "Day 3-Block 1", "Day 5-Block 1"},
			"Sarah Sweetman":           {"Day 1-Block 4", "Day 1-DT", "Day 3-Block 1", "Day 5-Block 1"},
			"Tania Tasker":             {"Day 1-Block 4", "Day 1-DT", "Day 2-Block 1", "Day 3-Block 1", "Day 4-Block 2"},
			"Valerie Mao":              {"Day 2-Block 3", "Day 4-Block 4", "Day 4-DT"},
			"Vanessa":                  {"Day 1-Block 3", "Day 2-Block 3", "Day 3-Block 4", "Day 4-Block 4", "Day 5-Block 4", "Day 5-DT"},
			"Simon Man":                {"Day 1-Block 4", "Day 1-DT", "Day 3-Block 1", "Day 5-Block 1"},
		},
		TimetableFeed: defaultTimetableFeed,
	}
}
