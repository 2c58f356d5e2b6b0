package main

import (
	"os"

	"github.com/metaphox/pas-lang/cmd/pas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
