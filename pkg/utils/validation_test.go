package utils

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type sample struct {
	ID   string `validate:"required"`
	Name string `validate:"required,max=5"`
}

func TestValidateStruct(t *testing.T) {
	Convey("Given a valid struct", t, func() {
		So(ValidateStruct(sample{ID: "a", Name: "b"}), ShouldBeNil)
	})

	Convey("Given a struct with several problems", t, func() {
		err := ValidateStruct(sample{Name: "toolong"})

		Convey("It should report each field", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "id is required; name must be at most 5 characters")
		})
	})
}
