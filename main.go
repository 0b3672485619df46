// Package main is the entry point for the Warden CLI.
package main

import "warden.dev/pkg/warden/cmd"

func main() {
	cmd.Execute()
}
