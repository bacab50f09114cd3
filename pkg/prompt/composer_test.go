package prompt

import (
	"fmt"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

func matchesFixture(n int) []types.VectorMatch {
	out := make([]types.VectorMatch, 0, n)

	for i := 0; i < n; i++ {
		out = append(out, types.VectorMatch{
			ID:          fmt.Sprintf("place_%d", i),
			Name:        fmt.Sprintf("Place %d", i),
			Type:        "Attraction",
			Location:    "Hanoi",
			Tags:        []string{"a", "b", "c", "d"},
			Description: strings.Repeat("é", 400),
			Score:       0.91234,
		})
	}

	return out
}

func TestDetailed(t *testing.T) {
	Convey("Given ten matches", t, func() {
		matches := matchesFixture(10)
		out := Detailed(matches)

		Convey("It should render one entry per match in order", func() {
			So(strings.Count(out, "   Relevance Score: 0.912\n"), ShouldEqual, 10)

			last := -1
			for i := range matches {
				idx := strings.Index(out, fmt.Sprintf("\n%d. Place %d (Attraction)\n", i+1, i))
				So(idx, ShouldBeGreaterThan, last)
				last = idx
			}
		})

		Convey("It should cap descriptions at 300 runes", func() {
			So(out, ShouldContainSubstring, "Description: "+strings.Repeat("é", 300)+"\n")
			So(out, ShouldNotContainSubstring, strings.Repeat("é", 301))
		})
	})

	Convey("Given a match without tags or description", t, func() {
		out := DetailEntry(1, types.VectorMatch{Name: "Hue", Type: "City"})

		So(out, ShouldEqual, "\n1. Hue (City)\n   Location: \n   Tags: N/A\n   Description: No description available\n   Relevance Score: 0.000\n")
	})

	Convey("Given no matches", t, func() {
		So(Detailed(nil), ShouldEqual, NoDetailedMatches)
	})
}

func TestSummary(t *testing.T) {
	Convey("Given ten matches", t, func() {
		out := Summary(matchesFixture(10))
		lines := strings.Split(out, "\n")

		Convey("It should keep eight lines with three tags each", func() {
			So(lines, ShouldHaveLength, MaxSummaryEntries)
			So(lines[0], ShouldEqual, "• Place 0 (Attraction) in Hanoi - a, b, c")
		})
	})

	Convey("Given a match without location or tags", t, func() {
		So(Summary([]types.VectorMatch{{Name: "X", Type: "Y"}}), ShouldEqual, "• X (Y)")
	})

	Convey("Given no matches", t, func() {
		So(Summary(nil), ShouldEqual, NoSummaryMatches)
	})
}

func TestRelationships(t *testing.T) {
	Convey("Given twelve facts", t, func() {
		facts := make([]types.GraphFact, 0, 12)
		for i := 0; i < 12; i++ {
			facts = append(facts, types.NewGraphFact("a", "Hanoi", "Connected_To", "b", "Ha Long Bay", strings.Repeat("x", 150)))
		}

		lines := strings.Split(Relationships(facts), "\n")

		Convey("It should keep ten lines with a 100 character description", func() {
			So(lines, ShouldHaveLength, MaxRelationships)
			So(lines[0], ShouldEqual, "• Hanoi → Connected_To → Ha Long Bay: "+strings.Repeat("x", 100)+"...")
		})
	})

	Convey("Given a fact without description", t, func() {
		out := Relationships([]types.GraphFact{{SourceName: "A", Relation: "R", TargetName: "B"}})
		So(out, ShouldEqual, "• A → R → B")
	})

	Convey("Given no facts", t, func() {
		So(Relationships(nil), ShouldEqual, NoRelationships)
	})
}

func TestBuild(t *testing.T) {
	Convey("Given a query with no retrieval results", t, func() {
		prompt := Build("zoos", nil, nil)

		Convey("It should produce a system and a user message", func() {
			So(prompt, ShouldHaveLength, 2)
			So(prompt[0].Role, ShouldEqual, types.RoleSystem)
			So(prompt[1].Role, ShouldEqual, types.RoleUser)
			So(prompt.System(), ShouldStartWith, "You are an expert Vietnam travel assistant.")
		})

		Convey("It should lay out every section with placeholders", func() {
			user := prompt.User()

			So(user, ShouldStartWith, "\n\nSEARCH RESULTS FOR: \"zoos\"\n\n=== DETAILED INFORMATION ===\n"+NoDetailedMatches)
			So(user, ShouldContainSubstring, "=== SUMMARY ===\n"+NoSummaryMatches)
			So(user, ShouldContainSubstring, "=== RELATIONSHIPS ===\n"+NoRelationships+"\n\n\nUSER QUESTION: zoos\n\n")
			So(user, ShouldEndWith, "list them with details from the search results.\n")
		})
	})
}
