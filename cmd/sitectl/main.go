package main

import "github.com/dkhalizov/site-pipeline/cmd/sitectl/cli"

func main() {
	cli.Execute()
}
