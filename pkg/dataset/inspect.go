package dataset

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/theapemachine/hybrid-travel/pkg/types"
	"github.com/theapemachine/hybrid-travel/pkg/utils"
)

const (
	maxZooListed   = 5
	maxHanoiListed = 10
	maxSamples     = 3
)

// TypeCount is how many records share a type.
type TypeCount struct {
	Type  string
	Count int
}

// Report summarises a dataset for a quick sanity check before ingesting it.
type Report struct {
	Total   int
	Zoo     []types.Place
	Types   []TypeCount
	Hanoi   []types.Place
	Samples []types.Place
}

// Inspect builds the report. Types are sorted by name; records without a
// type count as "Unknown".
func Inspect(places []types.Place) Report {
	report := Report{
		Total:   len(places),
		Samples: utils.Head(places, maxSamples),
	}

	counts := make(map[string]int)

	for _, place := range places {
		counts[typeOf(place)]++

		if mentionsZoo(place) {
			report.Zoo = append(report.Zoo, place)
		}

		if mentionsHanoi(place) {
			report.Hanoi = append(report.Hanoi, place)
		}
	}

	for kind, count := range counts {
		report.Types = append(report.Types, TypeCount{Type: kind, Count: count})
	}

	sort.Slice(report.Types, func(i, j int) bool {
		return report.Types[i].Type < report.Types[j].Type
	})

	return report
}

func typeOf(place types.Place) string {
	if place.Type == "" {
		return "Unknown"
	}

	return place.Type
}

func mentionsZoo(place types.Place) bool {
	if strings.Contains(strings.ToLower(place.Name+" "+place.Description), "zoo") {
		return true
	}

	for _, tag := range place.Tags {
		if strings.Contains(strings.ToLower(tag), "zoo") {
			return true
		}
	}

	return false
}

func mentionsHanoi(place types.Place) bool {
	return strings.Contains(strings.ToLower(place.Name+" "+place.City+" "+place.Description), "hanoi")
}

// Render writes the report in the layout the check command prints.
func (report Report) Render(w io.Writer) {
	fmt.Fprintf(w, "Total items in dataset: %d\n", report.Total)

	fmt.Fprintf(w, "\nZoo-related items: %d\n", len(report.Zoo))

	for _, place := range utils.Head(report.Zoo, maxZooListed) {
		fmt.Fprintf(w, "- %s (%s)\n", place.Name, typeOf(place))

		if place.Description != "" {
			fmt.Fprintf(w, "  Description: %s...\n", utils.Truncate(place.Description, 100))
		}
	}

	fmt.Fprintln(w, "\nItem types:")

	for _, tc := range report.Types {
		fmt.Fprintf(w, "- %s: %d\n", tc.Type, tc.Count)
	}

	fmt.Fprintf(w, "\nHanoi-related items: %d\n", len(report.Hanoi))

	for _, place := range utils.Head(report.Hanoi, maxHanoiListed) {
		fmt.Fprintf(w, "- %s (%s) - %s\n", place.Name, typeOf(place), place.City)
	}

	fmt.Fprintln(w, "\nSample items:")

	for i, place := range report.Samples {
		location := place.Location()
		if location == "" {
			location = "N/A"
		}

		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, place.Name, typeOf(place))
		fmt.Fprintf(w, "   City: %s\n", location)
		fmt.Fprintf(w, "   Tags: [%s]\n", strings.Join(place.Tags, ", "))

		if place.Description != "" {
			fmt.Fprintf(w, "   Description: %s...\n", utils.Truncate(place.Description, 150))
		}

		fmt.Fprintln(w)
	}
}
