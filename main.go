package main

import (
	"github.com/samber/lo"
	"github.com/vidmeta/vidmeta/cmd"
	"github.com/vidmeta/vidmeta/config"
	"github.com/vidmeta/vidmeta/internal/cache"
	"github.com/vidmeta/vidmeta/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
