package main

import (
	"os"

	"github.com/pointbank/passbook/internal/commands"
)

func main() {
	if err := commands.Execute(commands.NewRootCommand()); err != nil {
		os.Exit(1)
	}
}
