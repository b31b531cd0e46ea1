package state

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestState(t *testing.T) {
	Convey("Given the four state variants", t, func() {
		Convey("Success carries its payload", func() {
			s := Success("Big Buck Bunny")
			payload, ok := s.Payload()
			So(ok, ShouldBeTrue)
			So(payload, ShouldEqual, "Big Buck Bunny")
			So(s.IsTerminal(), ShouldBeTrue)
		})

		Convey("Error carries its message and no payload", func() {
			s := Error[string]("Video not found with ID: nope")
			_, ok := s.Payload()
			So(ok, ShouldBeFalse)
			So(s.Message(), ShouldEqual, "Video not found with ID: nope")
			So(s.IsError(), ShouldBeTrue)
			So(s.IsTerminal(), ShouldBeTrue)
		})

		Convey("Idle and Loading are not terminal", func() {
			So(Idle[int]().IsTerminal(), ShouldBeFalse)
			So(Loading[int]().IsTerminal(), ShouldBeFalse)
			So(Loading[int]().Kind().String(), ShouldEqual, "loading")
		})
	})
}

func TestHolder(t *testing.T) {
	Convey("Given a holder starting Idle", t, func() {
		h := NewHolder(Idle[string]())

		Convey("Value returns the current state", func() {
			So(h.Value().IsIdle(), ShouldBeTrue)
			h.Set(Loading[string]())
			So(h.Value().IsLoading(), ShouldBeTrue)
		})

		Convey("Observe sees every value in order", func() {
			var kinds []Kind
			h.Observe(func(s State[string]) { kinds = append(kinds, s.Kind()) })

			h.Set(Loading[string]())
			h.Set(Success("ok"))
			h.Set(Idle[string]())

			So(kinds, ShouldResemble, []Kind{KindLoading, KindSuccess, KindIdle})
		})

		Convey("Subscribe conflates to the latest value", func() {
			ch := h.Subscribe()
			h.Set(Loading[string]())
			h.Set(Success("latest"))

			got := <-ch
			payload, ok := got.Payload()
			So(ok, ShouldBeTrue)
			So(payload, ShouldEqual, "latest")
		})

		Convey("Subscribe starts with the current value", func() {
			h.Set(Error[string]("boom"))
			So((<-h.Subscribe()).Message(), ShouldEqual, "boom")
		})

		Convey("Close ends subscriptions and ignores later sets", func() {
			ch := h.Subscribe()
			<-ch
			h.Close()
			_, open := <-ch
			So(open, ShouldBeFalse)

			h.Set(Loading[string]())
			So(h.Value().IsIdle(), ShouldBeTrue)

			_, open = <-h.Subscribe()
			So(open, ShouldBeFalse)
		})

		Convey("Concurrent sets leave exactly one current value", func() {
			var wg sync.WaitGroup
			ch := h.Subscribe()
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					h.Set(Loading[string]())
					h.Set(Success("done"))
				}()
			}
			wg.Wait()

			So(h.Value().IsSuccess(), ShouldBeTrue)
			last := <-ch
			So(last.IsSuccess(), ShouldBeTrue)
		})

		Convey("Concurrent sets reach observers in the order they are stored", func() {
			counter := NewHolder(0)
			var mu sync.Mutex
			var seen []int
			counter.Observe(func(v int) {
				mu.Lock()
				seen = append(seen, v)
				mu.Unlock()
			})

			var wg sync.WaitGroup
			for i := 1; i <= 200; i++ {
				wg.Add(1)
				go func(v int) {
					defer wg.Done()
					counter.Set(v)
				}(i)
			}
			wg.Wait()

			So(seen, ShouldHaveLength, 200)
			So(seen[len(seen)-1], ShouldEqual, counter.Value())
		})
	})
}
