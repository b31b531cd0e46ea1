package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidmeta/vidmeta/constant"
	"github.com/vidmeta/vidmeta/track"
	"go.uber.org/goleak"
)

const widevineMPD = `<MPD xmlns="urn:mpeg:dash:schema:mpd:2011"><Period><AdaptationSet contentType="video" width="1280" height="720">
  <ContentProtection schemeIdUri="urn:uuid:edef8ba9-79d6-4ace-a3c8-27dcd51d21ed"/>
  <Representation id="a" bandwidth="2500000"/>
  <Representation id="b" width="854" height="480" bandwidth="1500000"/>
</AdaptationSet></Period></MPD>`

const playreadyMPD = `<MPD xmlns="urn:mpeg:dash:schema:mpd:2011"><Period><AdaptationSet contentType="video" width="1280" height="720">
  <ContentProtection schemeIdUri="urn:uuid:9a04f079-9840-4286-ab92-e65be0885f95"/>
  <Representation id="a" bandwidth="2500000"/>
</AdaptationSet></Period></MPD>`

func newManifestServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/widevine.mpd", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(widevineMPD))
	})
	mux.HandleFunc("/playready.mpd", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(playreadyMPD))
	})
	mux.HandleFunc("/slow.mpd", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})
	return httptest.NewServer(mux)
}

func awaitState(states <-chan State, want State) bool {
	timeout := time.After(3 * time.Second)
	for {
		select {
		case s := <-states:
			if s == want {
				return true
			}
		case <-timeout:
			return false
		}
	}
}

func TestDRMConfig(t *testing.T) {
	Convey("Widevine builds a multi-session config", t, func() {
		drm := Widevine("https://cwip-shaka-proxy.appspot.com/no_auth")
		So(drm.Scheme, ShouldEqual, WidevineUUID)
		So(drm.MultiSession, ShouldBeTrue)
		So(drm.Validate(), ShouldBeNil)
	})

	Convey("Invalid license URIs are rejected", t, func() {
		So(Widevine("not a url").Validate(), ShouldNotBeNil)
		So(Widevine("ftp://license").Validate(), ShouldNotBeNil)
		So(DRMConfig{LicenseURI: "https://x"}.Validate(), ShouldNotBeNil)
	})
}

func TestProbe(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	Convey("Given a probe engine and a manifest server", t, func() {
		server := newManifestServer()
		probe := NewProbe(server.Client(), track.Unconstrained())

		states := make(chan State, 8)
		probe.OnStateChange(func(s State) { states <- s })

		Reset(func() {
			probe.Release()
			server.Close()
		})

		Convey("Renditions are unavailable before prepare", func() {
			_, ok := probe.Renditions()
			So(ok, ShouldBeFalse)
			So(probe.State(), ShouldEqual, StateIdle)
		})

		Convey("Protected media with matching DRM becomes ready", func() {
			err := probe.Prepare(context.Background(), MediaItem{
				URI:      server.URL + "/widevine.mpd",
				MimeType: constant.MimeDASH,
				DRM:      mo.Some(Widevine("https://license.example.com")),
			})
			So(err, ShouldBeNil)
			So(awaitState(states, StateReady), ShouldBeTrue)

			renditions, ok := probe.Renditions()
			So(ok, ShouldBeTrue)
			So(track.Heights(track.Present(renditions)), ShouldResemble, []int{720, 480})
			So(probe.Err(), ShouldBeNil)
		})

		Convey("Protected media without DRM fails", func() {
			So(probe.Prepare(context.Background(), MediaItem{URI: server.URL + "/widevine.mpd"}), ShouldBeNil)
			So(awaitState(states, StateIdle), ShouldBeTrue)
			So(probe.Err(), ShouldEqual, ErrProtected)
		})

		Convey("A scheme the media does not carry fails", func() {
			So(probe.Prepare(context.Background(), MediaItem{
				URI: server.URL + "/playready.mpd",
				DRM: mo.Some(Widevine("https://license.example.com")),
			}), ShouldBeNil)
			So(awaitState(states, StateIdle), ShouldBeTrue)
			So(probe.Err(), ShouldNotBeNil)
		})

		Convey("Invalid input is rejected synchronously", func() {
			So(probe.Prepare(context.Background(), MediaItem{}), ShouldNotBeNil)
			So(probe.Prepare(context.Background(), MediaItem{
				URI: server.URL + "/widevine.mpd",
				DRM: mo.Some(Widevine("::")),
			}), ShouldNotBeNil)
		})

		Convey("Release cancels an in-flight load", func() {
			So(probe.Prepare(context.Background(), MediaItem{URI: server.URL + "/slow.mpd"}), ShouldBeNil)
			So(awaitState(states, StateBuffering), ShouldBeTrue)
			probe.Release()
			So(probe.State(), ShouldEqual, StateIdle)
			So(probe.Prepare(context.Background(), MediaItem{URI: server.URL + "/slow.mpd"}), ShouldEqual, ErrReleased)
		})
	})
}

// countingTransport counts requests and fails them without network access.
type countingTransport struct{ calls atomic.Int32 }

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return nil, context.Canceled
}

func TestProbeReleaseRace(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	Convey("Given probes released while preparing", t, func() {
		for i := 0; i < 200; i++ {
			transport := &countingTransport{}
			p := NewProbe(&http.Client{Transport: transport}, track.Unconstrained())

			var (
				wg  sync.WaitGroup
				err error
			)
			wg.Add(1)
			go func() {
				defer wg.Done()
				err = p.Prepare(context.Background(), MediaItem{URI: "https://example.com/a.mpd"})
			}()

			p.Release()
			wg.Wait()

			if err != nil {
				So(err, ShouldEqual, ErrReleased)
			}

			// nothing may start loading once Release has returned
			calls := transport.calls.Load()
			time.Sleep(time.Millisecond)
			So(transport.calls.Load(), ShouldEqual, calls)
		}
	})
}
