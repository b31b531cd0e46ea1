// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/vidmeta/vidmeta/constant"
	"github.com/vidmeta/vidmeta/filesystem"
	"github.com/vidmeta/vidmeta/where"
)

// EnvKeyReplacer normalizes configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state: defaults, environment bindings and the config file.
// A missing config file is not an error.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// Path returns the location of the TOML config file, whether or not it exists.
func Path() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}
