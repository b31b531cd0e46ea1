package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/vidmeta/vidmeta/filesystem"
	"github.com/vidmeta/vidmeta/inline"
	"github.com/vidmeta/vidmeta/query"
	"github.com/vidmeta/vidmeta/util"
)

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().BoolP("json", "j", false, "Print the results as JSON")
	lookupCmd.Flags().StringP("tracks", "t", "", "Track filter: all, highest, lowest, a height or a range")
	lookupCmd.Flags().BoolP("thumbnail", "T", false, "Open the thumbnail of each found video")
	lookupCmd.Flags().StringP("output", "o", "", "Write the output to a file")
	lookupCmd.Flags().IntP("width", "w", 0, "Wrap descriptions at this width. Defaults to the terminal width")
	lookupCmd.Flags().IntP("concurrency", "c", 4, "Number of lookups to run at once")
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [id...]",
	Short: "Fetch video metadata by ID",
	Long: `Fetch the metadata record of each ID from the configured repository.

Track filters:
  all - every advertised track
  highest - the highest resolution only
  lowest - the lowest resolution only
  [height] - a single resolution, e.g. 720p
  [from]-[to] - an inclusive range of heights, e.g. 480-1080

IDs that fail are reported and the command exits with a non-zero status.`,
	Example: "  vidmeta lookup video1 video2 --json",
	Args:    cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepository()
		handleErr(err)

		tracks := mo.None[inline.TrackFilter]()
		if flag := lo.Must(cmd.Flags().GetString("tracks")); flag != "" {
			filter, err := inline.ParseTrackFilter(flag)
			handleErr(err)
			tracks = mo.Some(filter)
		}

		width := lo.Must(cmd.Flags().GetInt("width"))
		if width <= 0 {
			if w, _, err := util.TerminalSize(); err == nil {
				width = w
			}
		}

		out, closer := outputWriter(lo.Must(cmd.Flags().GetString("output")))
		defer closer()

		handleErr(inline.Lookup(cmd.Context(), &inline.LookupOptions{
			Out:         out,
			Repository:  repo,
			IDs:         args,
			Json:        lo.Must(cmd.Flags().GetBool("json")),
			Width:       width,
			Tracks:      tracks,
			Thumbnail:   lo.Must(cmd.Flags().GetBool("thumbnail")),
			Concurrency: lo.Must(cmd.Flags().GetInt("concurrency")),
		}))
	},
}

// outputWriter opens path for writing, or stdout when path is empty.
func outputWriter(path string) (io.Writer, func()) {
	if path == "" {
		return os.Stdout, func() {}
	}

	file, err := filesystem.API().Create(path)
	handleErr(err)
	return file, func() { _ = file.Close() }
}

func init() {
	lookupCmd.AddCommand(lookupSchemaCmd)

	lookupSchemaCmd.Flags().BoolP("play", "p", false, "Generate the schema of play --json output instead")
}

var lookupSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of lookup --json output",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "result", "record", "playback", "rendition", "constraint":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema
		if lo.Must(cmd.Flags().GetBool("play")) {
			schema = reflector.Reflect(&inline.PlayOutput{})
		} else {
			schema = reflector.Reflect(&inline.LookupOutput{})
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}
