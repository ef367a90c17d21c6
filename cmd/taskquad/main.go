package main

import "github.com/tkc/taskquad/internal/cli"

func main() {
	cli.Execute()
}
