package main

import (
	"os"

	"github.com/coddie-dev/create-coddie-app/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
