// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/dfawole/m4tplay/color"
	"github.com/dfawole/m4tplay/constant"
	"github.com/dfawole/m4tplay/icon"
	"github.com/dfawole/m4tplay/key"
	"github.com/dfawole/m4tplay/style"
	"github.com/dfawole/m4tplay/util"
)

// Notify prints a banner when a newer release is available. The check is
// quiet on failure; an unreachable registry never blocks the CLI.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for updates...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf("\n%s New version is available %s %s\n%s\n\n",
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/dfawole/m4tplay/releases/tag/v"+latest),
	)
}
