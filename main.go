/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/
package main

import (
	"github.com/jpl-au/entlog/cmd"

	// Built-in extensions register their commands in init()
	_ "github.com/jpl-au/entlog/extension/all"
)

func main() {
	cmd.Execute()
}
