package types

import (
	"encoding/json"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewGraphFact(t *testing.T) {
	Convey("Given a target with a long description", t, func() {
		desc := strings.Repeat("x", 250)
		fact := NewGraphFact("a", "Hanoi", "Located_In", "b", "Vietnam", desc)

		Convey("It should cap the description at 200 characters", func() {
			So(len([]rune(fact.TargetDescription)), ShouldEqual, MaxFactDescription)
			So(fact.SourceName, ShouldEqual, "Hanoi")
			So(fact.Relation, ShouldEqual, "Located_In")
		})
	})
}

func TestPromptAccessors(t *testing.T) {
	Convey("Given a two-message prompt", t, func() {
		prompt := Prompt{
			{Role: RoleSystem, Content: "sys"},
			{Role: RoleUser, Content: "usr"},
		}

		So(prompt.System(), ShouldEqual, "sys")
		So(prompt.User(), ShouldEqual, "usr")
		So(Prompt{}.User(), ShouldEqual, "")
	})
}

func TestPlaceUnmarshal(t *testing.T) {
	Convey("Given a dataset record with unknown fields", t, func() {
		raw := `{
			"id": "attraction_saigon_zoo",
			"type": "Attraction",
			"name": "Saigon Zoo and Botanical Gardens",
			"city": "Ho Chi Minh City",
			"tags": ["zoo", "family"],
			"entry_fee": "50,000 VND",
			"rating": 4.2,
			"connections": [{"relation": "Located_In", "target": "city_hcmc"}]
		}`

		var place Place
		err := json.Unmarshal([]byte(raw), &place)

		Convey("It should decode known fields and keep the rest", func() {
			So(err, ShouldBeNil)
			So(place.Name, ShouldEqual, "Saigon Zoo and Botanical Gardens")
			So(place.Connections, ShouldHaveLength, 1)
			So(place.Connections[0].Target, ShouldEqual, "city_hcmc")
			So(place.Extra["entry_fee"], ShouldEqual, "50,000 VND")
			So(place.Extra, ShouldNotContainKey, "connections")
		})

		Convey("It should flatten into graph properties without connections", func() {
			props := place.Properties()

			So(props["id"], ShouldEqual, "attraction_saigon_zoo")
			So(props["rating"], ShouldEqual, 4.2)
			So(props["tags"], ShouldResemble, []string{"zoo", "family"})
			So(props, ShouldNotContainKey, "connections")
		})

		Convey("It should render an embeddable passage", func() {
			So(place.Text(), ShouldStartWith, "Saigon Zoo and Botanical Gardens (Attraction) in Ho Chi Minh City")
			So(place.Text(), ShouldContainSubstring, "Tags: zoo, family")
		})
	})

	Convey("Given a record with only a region", t, func() {
		place := Place{Name: "Mekong Delta", Region: "South"}

		So(place.Location(), ShouldEqual, "South")
	})
}
