package main

import (
	"os"

	"provider-directory/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
