// Package main is the entry point for the vitam-chat gateway.
package main

import (
	"os"

	"github.com/donaldgifford/vitam-chat/cmd/vitam-chat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
