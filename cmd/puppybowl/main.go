package main

import "github.com/mcoot/puppybowl/internal/cli"

func main() {
	cli.Execute()
}
