package main

import (
	"os"

	"github.com/kusumi/fileobj/cmd/fonative/cmds"
)

func main() {
	if err := cmds.New().Execute(); err != nil {
		os.Exit(1)
	}
}
