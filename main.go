// Package main is the entry point for the liu CLI.
package main

import "liu.dev/pkg/liu/cmd"

func main() {
	cmd.Execute()
}
