// Package cmd implements the command-line interface for m4tplay.
package cmd

import (
	"errors"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/dfawole/m4tplay/auth"
	"github.com/dfawole/m4tplay/icon"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringP("token", "t", "", "The subscription token issued by the course platform")
	lo.Must0(loginCmd.MarkFlagRequired("token"))

	rootCmd.AddCommand(logoutCmd)
}

// loginCmd stores the subscription token in the system keyring.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the subscription token used to unlock gated lessons",
	Run: func(cmd *cobra.Command, args []string) {
		token := lo.Must(cmd.Flags().GetString("token"))
		if token == "" {
			handleErr(errors.New("empty token"))
		}

		handleErr(auth.SetToken(token))
		cmd.Printf("%s subscription token stored\n", icon.Get(icon.Success))
	},
}

// logoutCmd removes the stored subscription token.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored subscription token",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteToken())
		cmd.Printf("%s subscription token removed\n", icon.Get(icon.Success))
	},
}
