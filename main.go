// Package main is the entry point for the m4tplay application.
package main

import (
	"github.com/samber/lo"

	"github.com/dfawole/m4tplay/cmd"
	"github.com/dfawole/m4tplay/config"
	"github.com/dfawole/m4tplay/internal/cache"
	"github.com/dfawole/m4tplay/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Prune expired remote manifest cache entries in the background.
	cache.CollectGarbage()

	cmd.Execute()
}
