package main

import "github.com/agentic-research/randgen/cmd"

func main() {
	cmd.Execute()
}
