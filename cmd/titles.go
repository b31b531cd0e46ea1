package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidmeta/vidmeta/metadata"
	"github.com/vidmeta/vidmeta/metadata/fixture"
	"github.com/vidmeta/vidmeta/metadata/mxplayer"
	"github.com/vidmeta/vidmeta/style"
)

func init() {
	rootCmd.AddCommand(titlesCmd)

	titlesCmd.Flags().BoolP("json", "j", false, "Print the titles as JSON")
	titlesCmd.Flags().BoolP("all", "a", false, "List titles of every source")
	titlesCmd.SetOut(os.Stdout)
}

var titlesCmd = &cobra.Command{
	Use:   "titles [query]",
	Short: "List known titles or resolve a name to a video ID",
	Args:  cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return knownTitles().Names(), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		titles := knownTitles()
		if lo.Must(cmd.Flags().GetBool("all")) {
			titles = append(fixture.Titles(), mxplayer.KnownTitles...)
		}

		if len(args) == 1 {
			title, ok := titles.Closest(args[0])
			if !ok {
				handleErr(fmt.Errorf("no title matches %q", args[0]))
			}
			titles = metadata.Titles{title}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(titles))
			return
		}

		width := lo.Max(lo.Map(titles, func(t metadata.Title, _ int) int { return len(t.Name) }))
		for _, t := range titles {
			cmd.Printf(
				"%s%s %s %s\n",
				style.Bold(t.Name),
				strings.Repeat(" ", width-len(t.Name)),
				style.Fg(style.Yellow)(t.ID),
				style.Faint(t.Source),
			)
		}
	},
}
