package main

import (
	"os"

	"github.com/opentools-labs/opentools-launcher/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
