package main

import (
	"os"

	"github.com/sangkips/mail-merge-service/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
