package main

import (
	"os"

	"github.com/inma-labs/inma-matcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
