// Package main is the entry point for the podify CLI.
package main

import "podify.dev/pkg/podify/cmd"

func main() {
	cmd.Execute()
}
