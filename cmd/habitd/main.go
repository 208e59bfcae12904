// Package main is the single-binary entrypoint for habitd, the habit
// reminder daemon.
package main

import "github.com/habitloop/habitd/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
