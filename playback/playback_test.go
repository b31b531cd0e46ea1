package playback

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidmeta/vidmeta/constant"
	"github.com/vidmeta/vidmeta/engine"
	"github.com/vidmeta/vidmeta/lifecycle"
	"github.com/vidmeta/vidmeta/track"
	"go.uber.org/goleak"
)

type fakeEngine struct {
	mu         sync.Mutex
	selector   *track.Selector
	renditions []track.Rendition
	ready      bool
	prepareErr error
	err        error
	item       engine.MediaItem
	listeners  []func(engine.State)
	released   int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{selector: track.NewSelector(InitialConstraint(true))}
}

func (f *fakeEngine) Prepare(_ context.Context, item engine.MediaItem) error {
	f.mu.Lock()
	f.item = item
	listeners := f.listeners
	f.mu.Unlock()

	if f.prepareErr != nil {
		return f.prepareErr
	}
	for _, fn := range listeners {
		fn(engine.StateBuffering)
	}
	return nil
}

func (f *fakeEngine) Renditions() ([]track.Rendition, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renditions, f.ready
}

func (f *fakeEngine) Err() error { return f.err }
func (f *fakeEngine) State() engine.State { return engine.StateReady }
func (f *fakeEngine) Selector() *track.Selector { return f.selector }
func (f *fakeEngine) OnStateChange(fn func(engine.State)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, fn)
}
func (f *fakeEngine) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released++
}

func awaitTerminal(m *Model) State {
	ch := m.State().Subscribe()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case s, ok := <-ch:
			if !ok {
				return m.State().Value()
			}
			if s.IsTerminal() {
				return s
			}
		case <-timeout:
			return m.State().Value()
		}
	}
}

func TestModel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	Convey("Given a player model over a fake engine", t, func() {
		scope := lifecycle.New(context.Background())
		eng := newFakeEngine()
		m := New(scope, eng, 10*time.Millisecond)
		Reset(m.Close)

		Convey("It starts loading with the highest bitrate forced", func() {
			So(m.State().Value().IsLoading(), ShouldBeTrue)
			So(m.Constraint().ForceHighestBitrate, ShouldBeTrue)
			So(m.Constraint().IsCapped(), ShouldBeFalse)
		})

		Convey("Loading presents deduplicated renditions", func() {
			eng.ready = true
			eng.renditions = []track.Rendition{
				{ID: "0-0-0", Width: 1280, Height: 720, Bitrate: 2_500_000},
				{ID: "0-0-1", Width: 1920, Height: 1080, Bitrate: 5_000_000},
				{ID: "0-0-2", Width: 1280, Height: 720, Bitrate: 3_000_000},
				{ID: "0-0-3", Width: 0, Height: 0},
			}

			m.Load(DefaultManifestURL, DefaultLicenseURL)
			final := awaitTerminal(m)

			payload, ok := final.Payload()
			So(ok, ShouldBeTrue)
			So(track.Heights(payload.Tracks), ShouldResemble, []int{1080, 720})
			So(payload.AspectRatio, ShouldAlmostEqual, 1920.0/1080.0)

			drm, ok := eng.item.DRM.Get()
			So(ok, ShouldBeTrue)
			So(drm.Scheme, ShouldEqual, engine.WidevineUUID)
			So(drm.MultiSession, ShouldBeTrue)
			So(eng.item.MimeType, ShouldEqual, constant.MimeDASH)
			So(m.Buffering().Value(), ShouldBeTrue)

			active, ok := m.Active(0)
			So(ok, ShouldBeTrue)
			So(active.Height, ShouldEqual, 1080)
		})

		Convey("Unsettled track information yields an empty list and the default ratio", func() {
			m.Load(DefaultManifestURL, "")
			payload, ok := awaitTerminal(m).Payload()
			So(ok, ShouldBeTrue)
			So(payload.Tracks, ShouldBeEmpty)
			So(payload.AspectRatio, ShouldEqual, track.DefaultAspectRatio)
			So(eng.item.DRM.IsAbsent(), ShouldBeTrue)
		})

		Convey("Prepare failures become playback errors", func() {
			eng.prepareErr = errors.New("bad license")
			m.Load(DefaultManifestURL, DefaultLicenseURL)
			So(awaitTerminal(m).Message(), ShouldEqual, "Playback failed: bad license")
		})

		Convey("Engine errors after settling become playback errors", func() {
			eng.err = errors.New("HTTP 403")
			m.Load(DefaultManifestURL, DefaultLicenseURL)
			So(awaitTerminal(m).Message(), ShouldEqual, "Playback failed: HTTP 403")
		})

		Convey("Selecting a height caps the engine", func() {
			m.SelectHeight(480)
			So(m.Constraint().MaxWidth, ShouldEqual, math.MaxInt)
			So(m.Constraint().MaxHeight, ShouldEqual, 480)
			So(m.Constraint().ForceHighestBitrate, ShouldBeTrue)

			So(m.SelectResolution("720p"), ShouldBeTrue)
			So(m.Constraint().MaxHeight, ShouldEqual, 720)

			So(m.SelectResolution("hd"), ShouldBeFalse)
			So(m.Constraint().MaxHeight, ShouldEqual, 720)
		})

		Convey("Closing releases the engine once", func() {
			m.Close()
			m.Close()
			So(eng.released, ShouldEqual, 1)

			m.Load(DefaultManifestURL, DefaultLicenseURL)
			So(m.State().Value().IsLoading(), ShouldBeTrue)
		})
	})
}

func TestModelWithProbe(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	Convey("Given a probe engine and a clear DASH manifest", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<MPD xmlns="urn:mpeg:dash:schema:mpd:2011"><Period><AdaptationSet contentType="video">
  <Representation id="a" width="1920" height="1080" bandwidth="5000000"/>
  <Representation id="b" width="1280" height="720" bandwidth="2500000"/>
  <Representation id="c" width="640" height="360" bandwidth="800000"/>
</AdaptationSet></Period></MPD>`))
		}))

		scope := lifecycle.New(context.Background())
		m := New(scope, engine.NewProbe(server.Client(), InitialConstraint(true)), 200*time.Millisecond)

		Reset(func() {
			m.Close()
			server.Close()
		})

		m.Load(server.URL+"/clear.mpd", "")
		payload, ok := awaitTerminal(m).Payload()
		So(ok, ShouldBeTrue)
		So(track.Heights(payload.Tracks), ShouldResemble, []int{1080, 720, 360})
		So(m.Buffering().Value(), ShouldBeFalse)

		m.SelectHeight(720)
		active, _ := m.Active(0)
		So(active.Height, ShouldEqual, 720)
	})
}
