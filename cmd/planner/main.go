package main

import (
	"os"

	"github.com/rpgo/financial-planner/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
