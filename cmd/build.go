package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/vidmeta/vidmeta/auth"
	"github.com/vidmeta/vidmeta/constant"
	"github.com/vidmeta/vidmeta/engine"
	"github.com/vidmeta/vidmeta/key"
	"github.com/vidmeta/vidmeta/metadata"
	"github.com/vidmeta/vidmeta/metadata/catalog"
	"github.com/vidmeta/vidmeta/metadata/fixture"
	"github.com/vidmeta/vidmeta/metadata/mxplayer"
	"github.com/vidmeta/vidmeta/network"
	"github.com/vidmeta/vidmeta/playback"
	"github.com/vidmeta/vidmeta/player"
)

var sources = []string{fixture.Name, catalog.Name, mxplayer.Name}

var engines = []string{"probe", "mpv"}

// newRepository builds the repository selected by metadata.source.
func newRepository() (metadata.Repository, error) {
	var (
		repo metadata.Repository
		err  error
	)

	switch source := viper.GetString(key.MetadataSource); source {
	case fixture.Name:
		repo = fixture.New(viper.GetDuration(key.FixtureLatency))
	case catalog.Name:
		timeout := viper.GetDuration(key.CatalogTimeout)
		client := network.New(network.Options{
			ConnectTimeout: timeout,
			ReadTimeout:    timeout,
			LogBodies:      viper.GetBool(key.NetworkLogBodies),
			Fingerprint:    viper.GetBool(key.NetworkFingerprint),
			RateLimit:      viper.GetFloat64(key.NetworkRateLimit),
		})
		repo, err = catalog.New(viper.GetString(key.CatalogBaseURL), client, auth.Token())
	case mxplayer.Name:
		client := mxplayer.NewClient(network.Options{
			ConnectTimeout: viper.GetDuration(key.DetailConnectTimeout),
			LogBodies:      viper.GetBool(key.NetworkLogBodies),
			Fingerprint:    viper.GetBool(key.NetworkFingerprint),
			RateLimit:      viper.GetFloat64(key.NetworkRateLimit),
		})
		repo, err = mxplayer.New(viper.GetString(key.DetailBaseURL), client)
	default:
		return nil, fmt.Errorf("unknown metadata source: %s", source)
	}

	if err != nil {
		return nil, err
	}

	if viper.GetBool(key.MetadataCache) {
		repo = metadata.NewCached(repo, viper.GetDuration(key.MetadataCacheLifetime))
	}

	return repo, nil
}

// knownTitles lists the titles the selected source can resolve.
func knownTitles() metadata.Titles {
	if viper.GetString(key.MetadataSource) == mxplayer.Name {
		return mxplayer.KnownTitles
	}
	return fixture.Titles()
}

// streamFor maps fixture records to their public clear streams. Other
// sources carry no stream.
func streamFor() func(record *metadata.Record) (string, bool) {
	if viper.GetString(key.MetadataSource) != fixture.Name {
		return nil
	}

	return func(record *metadata.Record) (string, bool) {
		return fixture.StreamURL(record.ID), true
	}
}

// newEngine builds the engine selected by player.engine.
func newEngine() (engine.Engine, error) {
	initial := playback.InitialConstraint(viper.GetBool(key.PlayerForceHighest))

	switch name := viper.GetString(key.PlayerEngine); name {
	case "probe":
		return engine.NewProbe(network.Client, initial), nil
	case "mpv":
		if err := CheckDependencies(); err != nil {
			return nil, err
		}
		return player.NewMPV(network.Client, initial, constant.App), nil
	default:
		return nil, fmt.Errorf("unknown player engine: %s", name)
	}
}

func settleDelay() time.Duration {
	if d := viper.GetDuration(key.PlayerSettleDelay); d > 0 {
		return d
	}
	return playback.DefaultSettleDelay
}
