// Package cmd implements the command-line interface for m4tplay.
package cmd

import (
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dfawole/m4tplay/icon"
	"github.com/dfawole/m4tplay/key"
	"github.com/dfawole/m4tplay/progress"
	"github.com/dfawole/m4tplay/style"
	"github.com/dfawole/m4tplay/util"
)

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.Flags().StringP("remove", "r", "", "Remove the progress record for the given lesson id")
}

// progressCmd lists and manages saved lesson progress records.
var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Display saved lesson progress and quiz scores",
	Run: func(cmd *cobra.Command, args []string) {
		saved, err := progress.Get()
		handleErr(err)

		if remove := lo.Must(cmd.Flags().GetString("remove")); remove != "" {
			record, ok := saved[remove]
			if !ok {
				cmd.Printf("%s no progress for lesson %s\n", icon.Get(icon.Fail), remove)
				return
			}
			handleErr(progress.Remove(record))
			cmd.Printf("%s removed progress for %s\n", icon.Get(icon.Success), record.Title)
			return
		}

		if len(saved) == 0 {
			cmd.Println(style.Faint("No lessons watched yet."))
			return
		}

		records := lo.Values(saved)
		sort.Slice(records, func(i, j int) bool {
			return records[i].Title < records[j].Title
		})

		threshold := viper.GetFloat64(key.PlayerCompletionPercentage)
		for _, record := range records {
			watched := lo.Ternary(record.WatchedPercentage >= threshold, icon.Success, icon.Progress)
			cmd.Printf("%s %s\n", icon.Get(watched), record.String())
			if len(record.Bookmarks) > 0 {
				cmd.Printf("  %s\n", style.Faint(util.Quantify(len(record.Bookmarks), "bookmark", "bookmarks")))
			}
		}
	},
}
