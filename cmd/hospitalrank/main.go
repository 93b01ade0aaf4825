package main

import (
	"os"

	"hospitalrank/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
