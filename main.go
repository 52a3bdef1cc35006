package main

import (
	"os"

	"github.com/conneroisu/sassdocgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
