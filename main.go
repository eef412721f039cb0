package main

import (
	"github.com/zeu5/offline-subopt/config"
	"github.com/zeu5/offline-subopt/experiments"
)

// main entry point to the sweeps and training commands
func main() {
	rootCommand := experiments.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		config.Exitf("%s", err)
	}
}
