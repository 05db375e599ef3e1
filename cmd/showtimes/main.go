// Package main implements the showtimes CLI: run a search or serve the local HTTP surface.
package main

import (
	"os"

	"github.com/chronoworld/showtimes/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
