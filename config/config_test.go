package config

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidmeta/vidmeta/filesystem"
	"github.com/vidmeta/vidmeta/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without a config file", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should populate every registered default", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.MetadataSource), ShouldEqual, "fixture")
			So(viper.GetDuration(key.PlayerSettleDelay).Seconds(), ShouldEqual, 2)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("player.settle_delay"), ShouldEqual, "player_settle_delay")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.PlayerEngine]

		Convey("Env is prefixed with the application name", func() {
			So(field.Env(), ShouldEqual, "VIDMETA_PLAYER_ENGINE")
		})

		Convey("Pretty mentions the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.PlayerEngine)
		})

		Convey("JSON carries the type", func() {
			data, err := field.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"type":"string"`)
		})
	})
}

func TestFieldParse(t *testing.T) {
	Convey("Given a duration field", t, func() {
		field := Default[key.CatalogTimeout]

		Convey("It is typed as a duration", func() {
			So(field.Duration, ShouldBeTrue)
			data, err := field.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"type":"duration"`)
		})

		Convey("A value with a unit is accepted", func() {
			v, err := field.Parse([]string{"15s"})
			So(err, ShouldBeNil)

			viper.Set(key.CatalogTimeout, v)
			So(viper.GetDuration(key.CatalogTimeout), ShouldEqual, 15*time.Second)
		})

		Convey("A bare number is rejected", func() {
			_, err := field.Parse([]string{"15"})
			So(err, ShouldNotBeNil)
		})

		Convey("Text and negative values are rejected", func() {
			_, err := field.Parse([]string{"fifteen"})
			So(err, ShouldNotBeNil)
			_, err = field.Parse([]string{"-1s"})
			So(err, ShouldNotBeNil)
		})

		Reset(func() { viper.Set(key.CatalogTimeout, field.Value) })
	})

	Convey("Given fields of other types", t, func() {
		Convey("Integers and booleans are parsed", func() {
			rateLimit := Default[key.NetworkRateLimit]
			v, err := rateLimit.Parse([]string{"3"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 3)

			metadataCache := Default[key.MetadataCache]
			v, err = metadataCache.Parse([]string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)

			_, err = metadataCache.Parse([]string{"maybe"})
			So(err, ShouldNotBeNil)
		})

		Convey("Every default duration parses", func() {
			for _, field := range Default {
				if field.Duration {
					_, err := field.Parse([]string{field.Value.(string)})
					So(err, ShouldBeNil)
				}
			}
		})
	})
}
