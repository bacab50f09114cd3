package utils

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTruncate(t *testing.T) {
	Convey("Given strings of varying length", t, func() {
		Convey("It should leave short strings alone", func() {
			So(Truncate("hanoi", 10), ShouldEqual, "hanoi")
		})

		Convey("It should cut by rune, not byte", func() {
			So(Truncate("Huế city", 3), ShouldEqual, "Huế")
		})

		Convey("It should return nothing for a non-positive limit", func() {
			So(Truncate("hanoi", 0), ShouldEqual, "")
		})
	})
}

func TestEllipsize(t *testing.T) {
	Convey("Given a long description", t, func() {
		So(Ellipsize("abcdef", 3), ShouldEqual, "abc...")
		So(Ellipsize("abc", 3), ShouldEqual, "abc")
	})
}

func TestHead(t *testing.T) {
	Convey("Given a slice", t, func() {
		xs := []int{1, 2, 3, 4}

		So(Head(xs, 2), ShouldResemble, []int{1, 2})
		So(Head(xs, 10), ShouldResemble, xs)
		So(Head(xs, -1), ShouldBeEmpty)
	})
}

func TestContainsAny(t *testing.T) {
	Convey("Given a query", t, func() {
		So(ContainsAny("romantic trip", "couple", "romantic"), ShouldBeTrue)
		So(ContainsAny("museum", "zoo"), ShouldBeFalse)
	})
}
