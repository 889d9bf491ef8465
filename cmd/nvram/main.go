package main

import (
	"fmt"
	"os"

	"github.com/data-respons-solutions/nvram/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, command.ErrorMessage(err))
		os.Exit(1)
	}
}
