package main

import (
	"os"

	"github.com/gastos-labs/gastos-gateway/cli"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
