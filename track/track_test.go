package track

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

var ladder = []Rendition{
	{ID: "0-0-0", Width: 1280, Height: 720, Bitrate: 2_500_000},
	{ID: "0-0-1", Width: 0, Height: 0, Bitrate: 64_000},
	{ID: "0-0-2", Width: 1920, Height: 1080, Bitrate: 5_000_000},
	{ID: "0-0-3", Width: 1280, Height: 720, Bitrate: 3_000_000},
	{ID: "0-0-4", Width: 426, Height: 240, Bitrate: 500_000},
	{ID: "0-0-5", Width: 854, Height: 480, Bitrate: 1_500_000},
	{ID: "0-0-6", Width: 640, Height: -1, Bitrate: 700_000},
}

func TestPresent(t *testing.T) {
	Convey("Given raw renditions from the engine", t, func() {
		presented := Present(ladder)

		Convey("Unusable dimensions are dropped", func() {
			for _, r := range presented {
				So(r.Width, ShouldBeGreaterThan, 0)
				So(r.Height, ShouldBeGreaterThan, 0)
			}
		})

		Convey("Heights are unique and strictly descending", func() {
			So(Heights(presented), ShouldResemble, []int{1080, 720, 480, 240})
		})

		Convey("The first rendition per height wins", func() {
			So(presented[1].ID, ShouldEqual, "0-0-0")
		})

		Convey("Empty input presents nothing", func() {
			So(Present(nil), ShouldBeEmpty)
		})
	})
}

func TestAspectRatio(t *testing.T) {
	Convey("AspectRatio", t, func() {
		So(AspectRatio(Present(ladder)), ShouldAlmostEqual, 1920.0/1080.0)
		So(AspectRatio(nil), ShouldEqual, DefaultAspectRatio)
		So(AspectRatio([]Rendition{{Width: 640, Height: 480}}), ShouldAlmostEqual, 4.0/3.0)
	})
}

func TestParseHeight(t *testing.T) {
	Convey("ParseHeight", t, func() {
		for label, want := range map[string]int{"720": 720, "720p": 720, " 1080P ": 1080} {
			h, ok := ParseHeight(label)
			So(ok, ShouldBeTrue)
			So(h, ShouldEqual, want)
		}

		for _, label := range []string{"", "p", "hd", "-480p", "0", "72o"} {
			_, ok := ParseHeight(label)
			So(ok, ShouldBeFalse)
		}
	})
}

func TestConstraint(t *testing.T) {
	Convey("CapHeight leaves width unbounded", t, func() {
		c := CapHeight(480)
		So(c.MaxWidth, ShouldEqual, math.MaxInt)
		So(c.MaxHeight, ShouldEqual, 480)
		So(c.IsCapped(), ShouldBeTrue)
		So(Unconstrained().IsCapped(), ShouldBeFalse)
	})
}

func TestSelector(t *testing.T) {
	Convey("Given a selector over a presented ladder", t, func() {
		renditions := Present(ladder)
		s := NewSelector(Unconstrained())

		Convey("Unconstrained with unknown bandwidth picks the highest", func() {
			r, ok := s.Select(renditions, 0)
			So(ok, ShouldBeTrue)
			So(r.Height, ShouldEqual, 1080)
		})

		Convey("Bandwidth limits the pick", func() {
			r, _ := s.Select(renditions, 2_000_000)
			So(r.Height, ShouldEqual, 480)
		})

		Convey("A height cap is honoured", func() {
			s.SetConstraint(CapHeight(720))
			r, _ := s.Select(renditions, 0)
			So(r.Height, ShouldEqual, 720)
		})

		Convey("Forcing the highest bitrate ignores bandwidth within the cap", func() {
			s.SetConstraint(Constraint{MaxWidth: math.MaxInt, MaxHeight: 480, ForceHighestBitrate: true})
			r, _ := s.Select(renditions, 100_000)
			So(r.Height, ShouldEqual, 480)
		})

		Convey("Nothing fitting the bandwidth falls back to the lowest within the cap", func() {
			s.SetConstraint(CapHeight(720))
			r, _ := s.Select(renditions, 1)
			So(r.Height, ShouldEqual, 240)
		})

		Convey("Nothing within the cap falls back to the lowest overall", func() {
			s.SetConstraint(CapHeight(144))
			r, _ := s.Select(renditions, 0)
			So(r.Height, ShouldEqual, 240)
		})

		Convey("SetMaxVideoSize keeps ForceHighestBitrate and notifies", func() {
			s.SetConstraint(Constraint{MaxWidth: math.MaxInt, MaxHeight: math.MaxInt, ForceHighestBitrate: true})

			var seen []Constraint
			s.OnChange(func(c Constraint) { seen = append(seen, c) })
			s.SetMaxVideoSize(math.MaxInt, 360)

			So(s.Constraint().MaxHeight, ShouldEqual, 360)
			So(s.Constraint().ForceHighestBitrate, ShouldBeTrue)
			So(seen, ShouldHaveLength, 1)
		})

		Convey("No renditions selects nothing", func() {
			_, ok := s.Select(nil, 0)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestResolution(t *testing.T) {
	Convey("ResolutionFromHeight", t, func() {
		So(ResolutionFromHeight(144), ShouldEqual, Res240)
		So(ResolutionFromHeight(240), ShouldEqual, Res240)
		So(ResolutionFromHeight(360), ShouldEqual, Res480)
		So(ResolutionFromHeight(720), ShouldEqual, Res720)
		So(ResolutionFromHeight(2160), ShouldEqual, Res1080)
		So(Res720.Height(), ShouldEqual, 720)
	})
}
