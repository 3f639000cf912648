// Package main is the entry point for the amplife standalone host.
//
// Usage:
//
//	amplife [flags] <command> [args]
//
// Commands:
//
//	render   - Process a WAV file offline
//	play     - Play a WAV file through the plugin
//	live     - Run the plugin on the default sound card
//	version  - Show plugin identity and version
package main

import (
	"fmt"
	"os"

	"github.com/justyntemme/amplife/cmd/amplife/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
