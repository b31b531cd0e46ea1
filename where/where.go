// Package where resolves application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/vidmeta/vidmeta/constant"
	"github.com/vidmeta/vidmeta/filesystem"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "VIDMETA_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honouring VIDMETA_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory holding daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Queries resolves the recent video ID registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Metadata resolves the record cache file of a single repository.
func Metadata(repository string) string {
	return filepath.Join(Cache(), "metadata_"+repository+".json")
}
