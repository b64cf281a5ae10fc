// Package cmd implements the command-line interface for m4tplay.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dfawole/m4tplay/recent"
	"github.com/dfawole/m4tplay/style"
)

func init() {
	rootCmd.AddCommand(recentCmd)
}

// recentCmd lists recently watched lessons, most frequently opened first.
var recentCmd = &cobra.Command{
	Use:   "recent [filter]",
	Short: "List recently watched lessons",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var filter string
		if len(args) > 0 {
			filter = args[0]
		}

		paths := recent.SuggestMany(filter)
		if len(paths) == 0 {
			cmd.Println(style.Faint("No recently watched lessons."))
			return
		}

		for _, path := range paths {
			cmd.Println(path)
		}
	},
}
