package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidmeta/vidmeta/engine"
	"github.com/vidmeta/vidmeta/filesystem"
	"github.com/vidmeta/vidmeta/metadata/fixture"
	"github.com/vidmeta/vidmeta/playback"
	"github.com/vidmeta/vidmeta/track"
)

func init() {
	filesystem.SetMemMapFs()
}

func renditions(heights ...int) []track.Rendition {
	var r []track.Rendition
	for _, h := range heights {
		r = append(r, track.Rendition{ID: "r", Width: h * 16 / 9, Height: h, Bitrate: h * 1000})
	}
	return r
}

func TestParseTrackFilter(t *testing.T) {
	Convey("Given presented renditions", t, func() {
		all := renditions(1080, 720, 480, 240)

		Convey("all keeps everything", func() {
			f, err := ParseTrackFilter("all")
			So(err, ShouldBeNil)
			So(heightsOf(f(all)), ShouldResemble, []int{1080, 720, 480, 240})
		})

		Convey("highest and lowest pick the ends", func() {
			f, _ := ParseTrackFilter("highest")
			So(heightsOf(f(all)), ShouldResemble, []int{1080})
			f, _ = ParseTrackFilter(" Lowest ")
			So(heightsOf(f(all)), ShouldResemble, []int{240})
			So(heightsOf(f(nil)), ShouldBeEmpty)
		})

		Convey("a single height matches exactly", func() {
			f, err := ParseTrackFilter("720p")
			So(err, ShouldBeNil)
			So(heightsOf(f(all)), ShouldResemble, []int{720})
		})

		Convey("a range is inclusive and order insensitive", func() {
			f, err := ParseTrackFilter("1080-480")
			So(err, ShouldBeNil)
			So(heightsOf(f(all)), ShouldResemble, []int{1080, 720, 480})
		})

		Convey("garbage is rejected", func() {
			_, err := ParseTrackFilter("best")
			So(err, ShouldNotBeNil)
			_, err = ParseTrackFilter("abc-720")
			So(err, ShouldNotBeNil)
		})
	})
}

func heightsOf(r []track.Rendition, _ error) []int {
	return track.Heights(r)
}

func TestLookup(t *testing.T) {
	Convey("Given the fixture repository", t, func() {
		var buf bytes.Buffer
		options := &LookupOptions{
			Out:        &buf,
			Repository: fixture.New(0),
			Width:      60,
		}

		Convey("JSON output carries records and errors", func() {
			options.IDs = []string{"video1", "missing"}
			options.Json = true

			err := Lookup(context.Background(), options)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "1 lookup failed")

			var output LookupOutput
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Repository, ShouldEqual, fixture.Name)
			So(output.Results, ShouldHaveLength, 2)
			So(output.Results[0].Record.Title, ShouldEqual, "Big Buck Bunny")
			So(output.Results[0].Record.Duration, ShouldEqual, 596*time.Second)
			So(output.Results[1].Error, ShouldEqual, "Video not found with ID: missing")
		})

		Convey("Blank IDs are reported without a fetch", func() {
			options.IDs = []string{"  "}
			options.Json = true

			So(Lookup(context.Background(), options), ShouldNotBeNil)

			var output LookupOutput
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Results[0].Error, ShouldEqual, "Please enter a valid video ID")
		})

		Convey("Text output lists the record and filtered tracks", func() {
			filter, _ := ParseTrackFilter("720-1080")
			options.IDs = []string{"video2"}
			options.Tracks = mo.Some(filter)

			So(Lookup(context.Background(), options), ShouldBeNil)

			out := buf.String()
			So(out, ShouldContainSubstring, "Sintel")
			So(out, ShouldContainSubstring, "14m 48s")
			So(out, ShouldContainSubstring, "1080p")
			So(out, ShouldContainSubstring, "720p")
			So(out, ShouldNotContainSubstring, "480p")
		})
	})
}

func TestPlay(t *testing.T) {
	Convey("Given a clear DASH manifest", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<MPD xmlns="urn:mpeg:dash:schema:mpd:2011"><Period><AdaptationSet contentType="video" width="1280" height="720">
  <Representation id="a" width="1920" height="1080" bandwidth="5000000"/>
  <Representation id="b" bandwidth="2500000"/>
  <Representation id="c" width="640" height="360" bandwidth="800000"/>
</AdaptationSet></Period></MPD>`))
		}))
		Reset(server.Close)

		var buf bytes.Buffer
		options := &PlayOptions{
			Out:         &buf,
			Engine:      engine.NewProbe(server.Client(), playback.InitialConstraint(true)),
			ManifestURL: server.URL + "/clear.mpd",
			Settle:      200 * time.Millisecond,
			Json:        true,
		}

		Convey("The capped selection is reported", func() {
			options.MaxHeight = mo.Some("720p")

			So(Play(context.Background(), options), ShouldBeNil)

			var output PlayOutput
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(track.Heights(output.Playback.Tracks), ShouldResemble, []int{1080, 720, 360})
			So(output.Constraint.MaxHeight, ShouldEqual, 720)
			So(output.Active.Height, ShouldEqual, 720)
		})

		Convey("An invalid height is rejected", func() {
			options.MaxHeight = mo.Some("tall")
			So(Play(context.Background(), options), ShouldNotBeNil)
		})

		Convey("Load failures are written and returned", func() {
			options.ManifestURL = server.URL + "/clear.mpd"
			options.Engine = engine.NewProbe(&http.Client{Transport: failing{}}, playback.InitialConstraint(true))

			err := Play(context.Background(), options)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldStartWith, "Playback failed: ")

			var output PlayOutput
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Error, ShouldEqual, err.Error())
			So(output.Playback, ShouldBeNil)
		})
	})
}

type failing struct{}

func (failing) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, http.ErrHandlerTimeout
}

func TestLookupOrder(t *testing.T) {
	Convey("Given more IDs than lookups in flight", t, func() {
		var buf bytes.Buffer
		options := &LookupOptions{
			Out:         &buf,
			Repository:  fixture.New(10 * time.Millisecond),
			IDs:         []string{"video3", "video1", "video2", "video1"},
			Json:        true,
			Concurrency: 2,
		}

		So(Lookup(context.Background(), options), ShouldBeNil)

		var output LookupOutput
		So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
		ids := make([]string, 0, len(output.Results))
		for _, r := range output.Results {
			ids = append(ids, r.Record.ID)
		}
		So(ids, ShouldResemble, options.IDs)
	})
}
