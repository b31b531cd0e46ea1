package cache

import (
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidmeta/vidmeta/filesystem"
)

func TestPrune(t *testing.T) {
	Convey("Given a directory with old and fresh files", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		dir := "/logs"
		now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

		write := func(name string, age time.Duration) string {
			path := filepath.Join(dir, name)
			f, err := fs.Create(path)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
			So(fs.Chtimes(path, now.Add(-age), now.Add(-age)), ShouldBeNil)
			return path
		}

		So(fs.MkdirAll(dir, 0o755), ShouldBeNil)
		old := write("2026-01-01.log", 9*24*time.Hour)
		fresh := write("2026-01-09.log", 24*time.Hour)
		other := write("notes.txt", 30*24*time.Hour)

		Convey("Only matching expired files are removed", func() {
			n, err := Prune(dir, "*.log", LogTTL, now)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)

			for path, exists := range map[string]bool{old: false, fresh: true, other: true} {
				ok, err := filesystem.API().Exists(path)
				So(err, ShouldBeNil)
				So(ok, ShouldEqual, exists)
			}
		})

		Convey("A missing directory prunes nothing", func() {
			n, err := Prune("/nowhere", "*.log", LogTTL, now)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 0)
		})
	})
}
