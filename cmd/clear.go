package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/vidmeta/vidmeta/filesystem"
	"github.com/vidmeta/vidmeta/icon"
	"github.com/vidmeta/vidmeta/util"
	"github.com/vidmeta/vidmeta/where"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() []string
}

func single(fn func() string) func() []string {
	return func() []string { return []string{fn()} }
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), single(where.Cache)},
	{"queries history", "queries", mo.Some("q"), single(where.Queries)},
	{"metadata cache", "metadata", mo.Some("m"), func() []string {
		return lo.Map(sources, func(name string, _ int) string { return where.Metadata(name) })
	}},
	{"logs", "logs", mo.Some("l"), func() []string {
		matches, _ := afero.Glob(filesystem.API(), filepath.Join(where.Logs(), "*.log"))
		return matches
	}},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached data",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			for _, path := range target.location() {
				if err := util.Delete(path); err != nil && !os.IsNotExist(err) {
					e()
					handleErr(err)
				}
			}
			e()
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
