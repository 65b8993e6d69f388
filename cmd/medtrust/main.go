package main

import "medtrust/internal/cli"

// main hands off to the cobra command tree. Wiring lives in internal/cli so
// every subcommand shares one configuration path.
func main() {
	cli.Execute()
}
