// Package cmd implements the command-line interface for m4tplay.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dfawole/m4tplay/color"
	"github.com/dfawole/m4tplay/constant"
	"github.com/dfawole/m4tplay/icon"
	"github.com/dfawole/m4tplay/key"
	"github.com/dfawole/m4tplay/lesson"
	"github.com/dfawole/m4tplay/log"
	"github.com/dfawole/m4tplay/recent"
	"github.com/dfawole/m4tplay/style"
	"github.com/dfawole/m4tplay/tui"
	"github.com/dfawole/m4tplay/util"
	"github.com/dfawole/m4tplay/version"
	"github.com/dfawole/m4tplay/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")
	rootCmd.Flags().Bool("headless", false, "Play without the terminal interface")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("save-progress", "P", true, "Persist viewing progress and quiz scores")
	lo.Must0(viper.BindPFlag(key.ProgressSaveOnWatch, rootCmd.PersistentFlags().Lookup("save-progress")))

	rootCmd.PersistentFlags().StringP("captions", "c", "", "Preselect the caption language (e.g., en, es)")
	lo.Must0(viper.BindPFlag(key.CaptionsDefaultLanguage, rootCmd.PersistentFlags().Lookup("captions")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the m4tplay application.
var rootCmd = &cobra.Command{
	Use:   constant.M4TPlay + " [lesson]",
	Short: "An interactive video lesson player with in-stream quizzes",
	Long: constant.M4TPlay + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - An interactive video lesson player with in-stream quizzes"),
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return recent.SuggestMany(toComplete), cobra.ShellCompDirectiveDefault
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		CheckDependencies()

		l, err := lesson.Load(args[0])
		handleErr(err)

		if err := recent.Remember(args[0], l.Title); err != nil {
			log.Warnf("remember lesson: %v", err)
		}

		if lo.Must(cmd.Flags().GetBool("headless")) {
			handleErr(tui.RunHeadless(l))
			return
		}

		handleErr(tui.Run(l))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
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

	if err := rootCmd.Execute(); err != nil {
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
