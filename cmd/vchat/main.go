// Package main is the entry point for the vchat CLI client.
package main

import (
	"github.com/donaldgifford/vitam-chat/cmd/vchat/cmd"
)

func main() {
	cmd.Execute()
}
