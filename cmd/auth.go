package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/vidmeta/vidmeta/auth"
	"github.com/vidmeta/vidmeta/icon"
	"github.com/vidmeta/vidmeta/style"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the catalog API token",
	Long:  "Manage the bearer token sent to the catalog metadata API. The token is kept in the system keyring.",
}

func init() {
	authCmd.AddCommand(authSetCmd)
}

var authSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Store the catalog API token",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			handleErr(survey.AskOne(&survey.Password{
				Message: "Catalog API token:",
			}, &token, survey.WithValidator(survey.Required)))
		}

		token = strings.TrimSpace(token)
		if token == "" {
			handleErr(errors.New("token is empty"))
		}

		handleErr(auth.SetToken(token))
		fmt.Printf("%s token saved\n", style.Fg(style.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether a token is stored",
	Run: func(cmd *cobra.Command, args []string) {
		if auth.Token().IsPresent() {
			fmt.Printf("%s token is set\n", style.Fg(style.Green)(icon.Get(icon.Lock)))
			return
		}
		fmt.Println(style.Faint("no token set"))
	},
}

func init() {
	authCmd.AddCommand(authDeleteCmd)
}

var authDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the stored token",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteToken())
		fmt.Printf("%s token deleted\n", style.Fg(style.Green)(icon.Get(icon.Success)))
	},
}
