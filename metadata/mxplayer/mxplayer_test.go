package mxplayer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidmeta/vidmeta/metadata"
	"github.com/vidmeta/vidmeta/network"
)

const jabWeMet = `{
  "title": "Jab We Met",
  "description": "A depressed businessman meets a talkative girl on a train.",
  "releaseDate": "2007-10-26",
  "duration": 8280,
  "genres": ["Romance", "Comedy"],
  "languages": ["Hindi"],
  "tags": [{"name": "Classic"}, {"name": null}],
  "contributors": [{"name": "Kareena Kapoor", "type": "actor"}, {"name": "Imtiaz Ali", "type": "director"}]
}`

func TestRepository(t *testing.T) {
	Convey("Given a detail API server", t, func() {
		var query, ua, accept, contentType string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.RawQuery
			ua, accept, contentType = r.Header.Get("User-Agent"), r.Header.Get("Accept"), r.Header.Get("Content-Type")

			if r.URL.Path != "/v1/web/detail/video" {
				http.NotFound(w, r)
				return
			}

			switch r.URL.Query().Get("id") {
			case "acb8b71b41fa86ace0e3e10d75e78e22":
				_, _ = w.Write([]byte(jabWeMet))
			case "empty":
			case "missing":
				w.WriteHeader(http.StatusNotFound)
			default:
				w.WriteHeader(http.StatusBadRequest)
			}
		}))
		defer server.Close()

		repo, err := New(server.URL, NewClient(network.Options{ConnectTimeout: 5 * time.Second}))
		So(err, ShouldBeNil)

		Convey("A known movie resolves with the fixed headers", func() {
			record, err := repo.Metadata(context.Background(), "acb8b71b41fa86ace0e3e10d75e78e22")
			So(err, ShouldBeNil)

			So(query, ShouldEqual, "id=acb8b71b41fa86ace0e3e10d75e78e22&type=movie")
			So(ua, ShouldEqual, "Mozilla/5.0 (Android)")
			So(accept, ShouldEqual, "application/json")
			So(contentType, ShouldEqual, "application/json")

			So(record.Title, ShouldEqual, "Jab We Met")
			So(record.Duration, ShouldEqual, 8280*time.Second)
			So(record.Tags, ShouldResemble, []string{"Classic"})
			So(record.ContributorsOf("director"), ShouldResemble, []string{"Imtiaz Ali"})
		})

		Convey("Non-2xx responses become status errors", func() {
			_, err := repo.Metadata(context.Background(), "missing")
			So(metadata.Message(err), ShouldEqual, "Failed: 404 Not Found")
		})

		Convey("An empty body is a failure", func() {
			_, err := repo.Metadata(context.Background(), "empty")
			var status *metadata.StatusError
			So(errors.As(err, &status), ShouldBeTrue)
			So(status.Code, ShouldEqual, http.StatusOK)
		})
	})

	Convey("Known titles resolve by name", t, func() {
		title, ok := KnownTitles.Closest("housefull")
		So(ok, ShouldBeTrue)
		So(title.ID, ShouldEqual, "f11cec31eff8ae5a0984017b3c252e02")
	})
}
