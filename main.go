package main

import (
	"os"

	"github.com/theapemachine/hybrid-travel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
