package main

import (
	"os"

	"github.com/ecomstat/ecomclean/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
