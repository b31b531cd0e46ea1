package metadata

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidmeta/vidmeta/filesystem"
)

type countingRepo struct {
	calls int
	fail  bool
}

func (c *countingRepo) Name() string { return "counting" }

func (c *countingRepo) Metadata(_ context.Context, id string) (*Record, error) {
	c.calls++
	if c.fail {
		return nil, errors.New("boom")
	}
	return &Record{ID: id, Title: "Sintel"}, nil
}

func TestCached(t *testing.T) {
	Convey("Given a cached repository on an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		repo := &countingRepo{}
		cached := NewCached(repo, time.Hour)
		So(cached.Clear(), ShouldBeNil)

		Convey("The second lookup is served from disk", func() {
			first, err := cached.Metadata(context.Background(), "video2")
			So(err, ShouldBeNil)
			second, err := cached.Metadata(context.Background(), "video2")
			So(err, ShouldBeNil)

			So(second.Title, ShouldEqual, first.Title)
			So(repo.calls, ShouldEqual, 1)
			So(cached.Name(), ShouldEqual, "counting")
		})

		Convey("Failures are not cached", func() {
			repo.fail = true
			_, err := cached.Metadata(context.Background(), "video2")
			So(err, ShouldNotBeNil)

			repo.fail = false
			record, err := cached.Metadata(context.Background(), "video2")
			So(err, ShouldBeNil)
			So(record.ID, ShouldEqual, "video2")
			So(repo.calls, ShouldEqual, 2)
		})
	})
}
