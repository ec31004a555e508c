package main

import (
	"os"

	"searchline/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
