package main

import (
	"os"

	"github.com/billmate/billmate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
