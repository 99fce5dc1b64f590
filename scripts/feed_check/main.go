package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/noah-isme/idu-staffing-board/internal/models"
	"github.com/noah-isme/idu-staffing-board/internal/roster"
	"github.com/noah-isme/idu-staffing-board/internal/service"
)

// feed_check imports the timetable feed the same way the server does and prints the DP conflicts it derives, so a
// new feed can be reviewed before deployment.
func main() {
	var (
		rosterPath string
		feedPath   string
		teacher    string
		verbose    bool
	)
	flag.StringVar(&rosterPath, "roster", "", "Path to a roster YAML file (defaults to the built-in roster)")
	flag.StringVar(&feedPath, "feed", "", "Path to a timetable feed (defaults to the built-in feed)")
	flag.StringVar(&teacher, "teacher", "", "Only print the schedule of this teacher")
	flag.BoolVar(&verbose, "v", false, "Log importer details")
	flag.Parse()

	logr := zap.NewNop()
	if verbose {
		var err error
		if logr, err = zap.NewDevelopment(); err != nil {
			log.Fatalf("failed to init logger: %v", err)
		}
	}

	def, err := roster.Load(rosterPath, feedPath)
	if err != nil {
		log.Fatalf("failed to load roster: %v", err)
	}
	idx := service.BuildRosterIndex(def)
	tt := service.ImportTimetable(def.TimetableFeed, idx.Names(), logr)
	availability := service.NewAvailabilityService(tt, idx.ManualConflicts())

	fmt.Printf("rows=%d skipped=%d teachers=%d dp_teachers=%d\n", tt.Rows, tt.Skipped, len(tt.Schedule), tt.DPTeachers())

	rostered := make(map[string]struct{})
	for _, group := range idx.YearGroups() {
		for _, name := range group.Teachers {
			rostered[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(tt.Schedule))
	for name := range tt.Schedule {
		if teacher != "" && name != teacher {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TEACHER\tROSTERED\tDAY\tBLOCK\tCONFLICT")
	for _, name := range names {
		_, onRoster := rostered[name]
		for _, day := range models.Days {
			for _, block := range models.Blocks {
				conflict := availability.TeacherConflict(name, day, block)
				if !conflict.HasConflict {
					continue
				}
				fmt.Fprintf(w, "%s\t%t\t%s\t%s\t%s\n", name, onRoster, day, block, conflict.ClassCode)
			}
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("write report: %v", err)
	}
}
