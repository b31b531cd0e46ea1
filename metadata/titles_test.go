package metadata

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

var testTitles = Titles{
	{Name: "Big Buck Bunny", ID: "video1", Source: "fixture"},
	{Name: "Jab We Met", ID: "acb8b71b41fa86ace0e3e10d75e78e22", Source: "mxplayer"},
	{Name: "Housefull 2", ID: "f11cec31eff8ae5a0984017b3c252e02", Source: "mxplayer"},
	{Name: "The Monkey King 2", ID: "500f8c5e98bf9d06e109d8b880a76342", Source: "mxplayer"},
}

func TestTitles(t *testing.T) {
	Convey("Given known titles", t, func() {
		Convey("An exact ID resolves", func() {
			title, ok := testTitles.Closest("VIDEO1")
			So(ok, ShouldBeTrue)
			So(title.Name, ShouldEqual, "Big Buck Bunny")
		})

		Convey("A partial name resolves fuzzily", func() {
			title, ok := testTitles.Closest("jab met")
			So(ok, ShouldBeTrue)
			So(title.ID, ShouldEqual, "acb8b71b41fa86ace0e3e10d75e78e22")

			title, ok = testTitles.Closest("monkey")
			So(ok, ShouldBeTrue)
			So(title.Name, ShouldEqual, "The Monkey King 2")
		})

		Convey("Unmatched queries resolve to nothing", func() {
			_, ok := testTitles.Closest("zzzz")
			So(ok, ShouldBeFalse)
			_, ok = testTitles.Closest("   ")
			So(ok, ShouldBeFalse)
		})

		Convey("Tables filter by source", func() {
			So(testTitles.BySource("mxplayer"), ShouldHaveLength, 3)
			_, ok := testTitles.ByID("video1")
			So(ok, ShouldBeTrue)
		})
	})
}
