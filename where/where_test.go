package where

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidmeta/vidmeta/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Config() honours the override", func() {
			t.Setenv(EnvConfigPath, "/custom/vidmeta")
			So(Config(), ShouldEqual, "/custom/vidmeta")
			So(lo.Must(filesystem.API().IsDir("/custom/vidmeta")), ShouldBeTrue)
		})

		Convey("Logs() lives under Config()", func() {
			So(filepath.Dir(Logs()), ShouldEqual, Config())
		})

		Convey("Metadata() is keyed by repository", func() {
			So(filepath.Base(Metadata("fixture")), ShouldEqual, "metadata_fixture.json")
			So(filepath.Dir(Metadata("fixture")), ShouldEqual, Cache())
		})
	})
}
