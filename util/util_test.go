package util

import (
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidmeta/vidmeta/filesystem"
	"github.com/spf13/afero"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "track", "tracks"), ShouldEqual, "1 track")
		So(Quantify(2, "track", "tracks"), ShouldEqual, "2 tracks")
		So(Quantify(0, "track", "tracks"), ShouldEqual, "0 tracks")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestFormatDuration(t *testing.T) {
	Convey("FormatDuration", t, func() {
		So(FormatDuration(596*time.Second), ShouldEqual, "9m 56s")
		So(FormatDuration(888*time.Second), ShouldEqual, "14m 48s")
		So(FormatDuration(2*time.Hour+5*time.Second), ShouldEqual, "2h 0m 5s")
		So(FormatDuration(42*time.Second), ShouldEqual, "42s")
		So(FormatDuration(0), ShouldEqual, "0s")
	})
}

func TestFormatBitrate(t *testing.T) {
	Convey("FormatBitrate", t, func() {
		So(FormatBitrate(500_000), ShouldEqual, "500 kbps")
		So(FormatBitrate(5_000_000), ShouldEqual, "5.0 Mbps")
		So(FormatBitrate(0), ShouldEqual, "unknown")
	})
}

func TestWrap(t *testing.T) {
	Convey("Wrap", t, func() {
		wrapped := Wrap("a long description of a short film", 10)
		So(strings.Count(wrapped, "\n"), ShouldBeGreaterThan, 0)
		So(Wrap("unchanged", 0), ShouldEqual, "unchanged")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(afero.WriteFile(fs, "/tmp/a/b.json", []byte("{}"), 0o644), ShouldBeNil)

		Convey("Delete removes files and directories", func() {
			So(Delete("/tmp/a/b.json"), ShouldBeNil)
			exists, _ := afero.Exists(fs, "/tmp/a/b.json")
			So(exists, ShouldBeFalse)

			So(Delete("/tmp/a"), ShouldBeNil)
			exists, _ = afero.DirExists(fs, "/tmp/a")
			So(exists, ShouldBeFalse)
		})

		Convey("Delete reports missing paths", func() {
			So(Delete("/nope"), ShouldNotBeNil)
		})
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[string]
		So(s.Pop(), ShouldEqual, "")
		s.Push("lookup")
		s.Push("player")
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, "player")
		So(s.Pop(), ShouldEqual, "player")
		s.Clear()
		So(s.Len(), ShouldEqual, 0)
	})
}
