package main

import (
	"os"

	"courierbridge/cmd/courierctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
