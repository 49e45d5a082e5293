package main

import (
	"os"

	"github.com/hashicorp-forge/baasbox/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
