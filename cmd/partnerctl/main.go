package main

import (
	"os"

	"github.com/vladislavdragonenkov/partners/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
