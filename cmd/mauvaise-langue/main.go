// Package main provides the entry point for the mauvaise-langue CLI.
//
// Usage:
//
//	mauvaise-langue scrape
//	mauvaise-langue detect <text...>
//	mauvaise-langue define <term>
//
// See --help for all available options.
package main

import cmd "github.com/rohmanhakim/mauvaise-langue/internal/cli"

func main() {
	cmd.Execute()
}
