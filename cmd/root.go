// Package cmd implements the vidmeta command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidmeta/vidmeta/constant"
	"github.com/vidmeta/vidmeta/engine"
	"github.com/vidmeta/vidmeta/icon"
	"github.com/vidmeta/vidmeta/key"
	"github.com/vidmeta/vidmeta/log"
	"github.com/vidmeta/vidmeta/metadata/fixture"
	"github.com/vidmeta/vidmeta/style"
	"github.com/vidmeta/vidmeta/tui"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icons variant")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("source", "S", "", "Metadata repository to query")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("source", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return sources, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.MetadataSource, rootCmd.PersistentFlags().Lookup("source")))

	rootCmd.PersistentFlags().StringP("engine", "E", "", "Playback engine")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("engine", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return engines, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PlayerEngine, rootCmd.PersistentFlags().Lookup("engine")))

	rootCmd.Flags().BoolP("play", "p", false, "Open the player screen directly")
}

var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Video metadata lookup and adaptive stream inspection",
	Long: constant.Logo + "\n\n" +
		style.New().Italic(true).Foreground(style.Mauve).Render("    - Video metadata lookup and adaptive stream inspection"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		repo, err := newRepository()
		handleErr(err)

		options := &tui.Options{
			Repository:  repo,
			Titles:      knownTitles(),
			Samples:     fixture.SampleIDs(),
			ManifestURL: viper.GetString(key.PlayerManifestURL),
			LicenseURL:  viper.GetString(key.PlayerLicenseURL),
			Settle:      settleDelay(),
			Bandwidth:   viper.GetInt(key.PlayerBandwidthHint),
			StreamFor:   streamFor(),
			Play:        lo.Must(cmd.Flags().GetBool("play")),
			NewEngine: func() engine.Engine {
				eng, err := newEngine()
				handleErr(err)
				return eng
			},
		}

		handleErr(tui.Run(cmd.Context(), options))
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
