package metadata

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrors(t *testing.T) {
	Convey("NotFoundError", t, func() {
		err := fmt.Errorf("fixture: %w", &NotFoundError{ID: "nope"})
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		So((&NotFoundError{ID: "nope"}).Error(), ShouldEqual, "Video not found with ID: nope")
	})

	Convey("StatusError", t, func() {
		So((&StatusError{Code: 404, Status: "Not Found"}).Error(), ShouldEqual, "Failed: 404 Not Found")
	})

	Convey("Message", t, func() {
		So(Message(nil), ShouldEqual, "Unknown error")
		So(Message(errors.New("  ")), ShouldEqual, "Unknown error")
		So(Message(errors.New("boom")), ShouldEqual, "boom")
	})
}

func TestRecord(t *testing.T) {
	Convey("Given a record", t, func() {
		r := &Record{
			Genres: []string{"Drama", "Romance"},
			Contributors: []Contributor{
				{Name: "Kareena Kapoor", Type: "actor"},
				{Name: "Imtiaz Ali", Type: "director"},
				{Name: "Shahid Kapoor", Type: "actor"},
			},
			Tracks: []TrackOption{{Resolution: "720p"}, {Resolution: "bogus"}},
		}

		So(r.Genre(), ShouldEqual, "Drama")
		So(r.ContributorsOf("actor"), ShouldResemble, []string{"Kareena Kapoor", "Shahid Kapoor"})
		So(r.Tracks[0].Height(), ShouldEqual, 720)
		So(r.Tracks[1].Height(), ShouldEqual, 0)
		So((&Record{}).Genre(), ShouldBeEmpty)
	})
}
