package main

import (
	"github.com/gaswhisperer/gaswhisperer/cmd"
	"github.com/gaswhisperer/gaswhisperer/config"
)

func main() {
	// ensure configuration initialized at first.
	config.Init()

	cmd.Execute()
}
