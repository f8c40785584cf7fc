// Command cursordemo plays a cursor scenario on a headless output and
// writes the resulting frame as a PNG image.
//
// A scenario is a TOML file:
//
//	[output]
//	width = 320
//	height = 240
//	transform = "90"
//	backend = "headless"
//
//	[cursor]
//	width = 16
//	height = 16
//	color = "#ff8000"
//	hotspot = [2, 2]
//
//	[[step]]
//	move = [100.0, 50.0]
//
//	[[step]]
//	lock = true
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd()
	cmd.SetContext(context.Background())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
