package dataset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

const sampleDataset = `[
	{"id": "city_hanoi", "type": "City", "name": "Hanoi", "region": "Northern Vietnam",
	 "description": "Capital city.", "tags": ["culture", "food"],
	 "connections": [{"relation": "Located_In", "target": "region_north"}]},
	{"id": "attraction_zoo", "type": "Attraction", "name": "Hanoi Zoo", "city": "Hanoi",
	 "description": "A zoo in Thu Le Park.", "tags": ["animals"], "entry_fee": 50000},
	{"id": "attraction_safari", "type": "Attraction", "name": "Vinpearl Safari", "city": "Phu Quoc",
	 "tags": ["Zoo", "family"]},
	{"id": "hotel_1", "name": "Riverside Inn", "city": "Hue"}
]`

func TestDecode(t *testing.T) {
	Convey("Given a valid dataset", t, func() {
		places, err := Decode(strings.NewReader(sampleDataset))

		Convey("It should decode every record", func() {
			So(err, ShouldBeNil)
			So(places, ShouldHaveLength, 4)
			So(places[0].Connections, ShouldResemble, []types.Connection{{Relation: "Located_In", Target: "region_north"}})
			So(places[1].Extra["entry_fee"], ShouldEqual, float64(50000))
		})
	})

	Convey("Given a record without an id", t, func() {
		_, err := Decode(strings.NewReader(`[{"name": "Nameless"}]`))

		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "record 0")
		So(err.Error(), ShouldContainSubstring, "id is required")
	})

	Convey("Given malformed JSON", t, func() {
		_, err := Decode(strings.NewReader(`{"id":`))

		So(err, ShouldNotBeNil)
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a dataset file", t, func() {
		path := filepath.Join(t.TempDir(), DefaultFile)
		So(os.WriteFile(path, []byte(sampleDataset), 0o644), ShouldBeNil)

		places, err := Load(path)

		So(err, ShouldBeNil)
		So(places, ShouldHaveLength, 4)
	})

	Convey("Given a missing file", t, func() {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))

		So(err, ShouldNotBeNil)
	})
}

func TestInspect(t *testing.T) {
	Convey("Given the sample dataset", t, func() {
		places, err := Decode(strings.NewReader(sampleDataset))
		So(err, ShouldBeNil)

		report := Inspect(places)

		Convey("It should count totals and zoo-related records", func() {
			So(report.Total, ShouldEqual, 4)
			So(report.Zoo, ShouldHaveLength, 2)
			So(report.Zoo[1].Name, ShouldEqual, "Vinpearl Safari")
		})

		Convey("It should count types by name, with Unknown for untyped records", func() {
			So(report.Types, ShouldResemble, []TypeCount{
				{Type: "Attraction", Count: 2},
				{Type: "City", Count: 1},
				{Type: "Unknown", Count: 1},
			})
		})

		Convey("It should find Hanoi by name, city or description", func() {
			So(report.Hanoi, ShouldHaveLength, 2)
		})

		Convey("It should keep three samples", func() {
			So(report.Samples, ShouldHaveLength, 3)
		})

		Convey("It should render every section", func() {
			var buf bytes.Buffer
			report.Render(&buf)

			out := buf.String()
			So(out, ShouldContainSubstring, "Total items in dataset: 4")
			So(out, ShouldContainSubstring, "Zoo-related items: 2")
			So(out, ShouldContainSubstring, "- Unknown: 1")
			So(out, ShouldContainSubstring, "- Hanoi Zoo (Attraction) - Hanoi")
			So(out, ShouldContainSubstring, "   City: Northern Vietnam")
		})
	})

	Convey("Given more Hanoi records than are listed", t, func() {
		var places []types.Place

		for i := 0; i < 12; i++ {
			places = append(places, types.Place{ID: fmt.Sprint(i), Name: fmt.Sprintf("Hanoi spot %d", i)})
		}

		var buf bytes.Buffer
		Inspect(places).Render(&buf)

		So(buf.String(), ShouldContainSubstring, "Hanoi-related items: 12")
		So(buf.String(), ShouldContainSubstring, "Hanoi spot 9")
		So(buf.String(), ShouldNotContainSubstring, "Hanoi spot 10 ")
	})
}
