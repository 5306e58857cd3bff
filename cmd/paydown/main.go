package main

import (
	"os"

	"github.com/mmynk/paydown/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
