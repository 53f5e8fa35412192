package main

import (
	"os"

	"github.com/noel97chan-creator/IFRS16calculator/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
