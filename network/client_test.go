package network

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given an echo server", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/slow" {
				time.Sleep(200 * time.Millisecond)
			}
			w.Header().Set("X-Seen-UA", r.Header.Get("User-Agent"))
			w.Header().Set("X-Seen-Accept", r.Header.Get("Accept"))
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		Convey("Fixed headers are injected", func() {
			client := New(Options{Headers: map[string]string{
				"User-Agent": "Mozilla/5.0 (Android)",
				"Accept":     "application/json",
			}})

			resp, err := client.Get(server.URL)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.Header.Get("X-Seen-UA"), ShouldEqual, "Mozilla/5.0 (Android)")
			So(resp.Header.Get("X-Seen-Accept"), ShouldEqual, "application/json")
		})

		Convey("Request headers take precedence", func() {
			client := New(Options{Headers: map[string]string{"Accept": "application/json"}})
			req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
			req.Header.Set("Accept", "application/dash+xml")

			resp, err := client.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.Header.Get("X-Seen-Accept"), ShouldEqual, "application/dash+xml")
		})

		Convey("The read timeout is enforced", func() {
			client := New(Options{ReadTimeout: 20 * time.Millisecond})
			_, err := client.Get(server.URL + "/slow")
			So(err, ShouldNotBeNil)
		})

		Convey("Plain http passes through the fingerprint transport", func() {
			client := New(Options{Fingerprint: true, LogBodies: true})
			resp, err := client.Get(server.URL)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "ok")
		})

		Convey("Rate limited requests wait for a token", func() {
			client := New(Options{RateLimit: 10, Burst: 1})

			start := time.Now()
			for i := 0; i < 3; i++ {
				resp, err := client.Get(server.URL)
				So(err, ShouldBeNil)
				_ = resp.Body.Close()
			}
			So(time.Since(start), ShouldBeGreaterThanOrEqualTo, 150*time.Millisecond)
		})

		Convey("A cancelled request does not wait for a token", func() {
			client := New(Options{RateLimit: 0.001, Burst: 1})
			resp, err := client.Get(server.URL)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
			_, err = client.Do(req)
			So(err, ShouldNotBeNil)
		})
	})
}
