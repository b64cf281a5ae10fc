// Package cmd implements the command-line interface for m4tplay.
package cmd

import (
	"encoding/json"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/dfawole/m4tplay/icon"
	"github.com/dfawole/m4tplay/lesson"
	"github.com/dfawole/m4tplay/style"
	"github.com/dfawole/m4tplay/util"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
}

// inspectCmd validates a lesson manifest and prints its structure without playing it.
var inspectCmd = &cobra.Command{
	Use:   "inspect [lesson]",
	Short: "Validate a lesson manifest and display its structure",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		l, err := lesson.Load(args[0])
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(l))
			return
		}

		cmd.Printf("%s %s\n", icon.Get(icon.Success), style.Bold(l.Title))
		cmd.Println(style.Faint(l.Source))
		cmd.Println(util.Quantify(len(l.Chapters), "chapter", "chapters"))
		cmd.Println(util.Quantify(len(l.Tracks), "caption track", "caption tracks"))
		cmd.Printf("%s worth %s\n",
			util.Quantify(len(l.Questions), "question", "questions"),
			util.Quantify(l.TotalPoints(), "point", "points"),
		)
		if l.RequiresSubscription {
			cmd.Println(style.Fg(style.WarningColor)("requires subscription"))
		}
	},
}
