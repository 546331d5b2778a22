// homebot - home assistant robot control console
//
// Usage:
//
//	homebot run [--script FILE]      interactive console (or replay a script)
//	homebot plan --to 5,5            print a planned route
//	homebot bench --size 20          compare planners on random grids
//
// Configuration comes from --config / HOMEBOT_CONFIG, then ROBOT_ID,
// HOMEBOT_PLANNER and LOG_LEVEL.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
