package main

import (
	"os"

	"github.com/rentd-dev/rentd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
