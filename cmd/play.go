package cmd

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidmeta/vidmeta/inline"
	"github.com/vidmeta/vidmeta/key"
	"github.com/vidmeta/vidmeta/track"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("manifest", "m", "", "Manifest URL. Defaults to player.manifest_url")
	playCmd.Flags().StringP("license", "l", "", "Widevine license URL. Defaults to player.license_url")
	playCmd.Flags().Bool("clear", false, "Load the manifest without DRM")
	playCmd.Flags().StringP("max-height", "H", "", "Cap the selection at this resolution, e.g. 720p")
	lo.Must0(playCmd.RegisterFlagCompletionFunc("max-height", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(track.Resolutions, func(r track.Resolution, _ int) string { return string(r) }), cobra.ShellCompDirectiveNoFileComp
	}))
	playCmd.Flags().StringP("tracks", "t", "", "Track filter: all, highest, lowest, a height or a range")
	playCmd.Flags().BoolP("json", "j", false, "Print the result as JSON")
	playCmd.Flags().IntP("bandwidth", "b", 0, "Bandwidth estimate in bits per second. Defaults to player.bandwidth_hint")
	playCmd.Flags().Bool("hold", false, "Keep the engine running until interrupted")
	playCmd.Flags().StringP("output", "o", "", "Write the output to a file")

	playCmd.MarkFlagsMutuallyExclusive("license", "clear")
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Load a stream and list its video renditions",
	Long: `Prepare the playback engine with a manifest, wait for track information to settle
and print the renditions offered for selection, one per resolution, highest first.

With --max-height the engine selection is capped and the rendition it would pick
at the given bandwidth is reported.`,
	Example: "  vidmeta play --max-height 720p\n  vidmeta play -m https://example.com/clear.mpd --clear --json",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		manifest := lo.Must(cmd.Flags().GetString("manifest"))
		if manifest == "" {
			manifest = viper.GetString(key.PlayerManifestURL)
		}

		license := lo.Must(cmd.Flags().GetString("license"))
		if license == "" && !lo.Must(cmd.Flags().GetBool("clear")) {
			license = viper.GetString(key.PlayerLicenseURL)
		}

		bandwidth := lo.Must(cmd.Flags().GetInt("bandwidth"))
		if bandwidth <= 0 {
			bandwidth = viper.GetInt(key.PlayerBandwidthHint)
		}

		maxHeight := mo.None[string]()
		if flag := lo.Must(cmd.Flags().GetString("max-height")); flag != "" {
			maxHeight = mo.Some(flag)
		}

		tracks := mo.None[inline.TrackFilter]()
		if flag := lo.Must(cmd.Flags().GetString("tracks")); flag != "" {
			filter, err := inline.ParseTrackFilter(flag)
			handleErr(err)
			tracks = mo.Some(filter)
		}

		eng, err := newEngine()
		handleErr(err)

		out, closer := outputWriter(lo.Must(cmd.Flags().GetString("output")))
		defer closer()

		handleErr(inline.Play(cmd.Context(), &inline.PlayOptions{
			Out:         out,
			Engine:      eng,
			ManifestURL: manifest,
			LicenseURL:  license,
			Settle:      settleDelay(),
			Json:        lo.Must(cmd.Flags().GetBool("json")),
			Tracks:      tracks,
			MaxHeight:   maxHeight,
			Bandwidth:   bandwidth,
			Hold:        lo.Must(cmd.Flags().GetBool("hold")),
		}))
	},
}
