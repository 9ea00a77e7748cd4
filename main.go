package main

import "github.com/oskarlind/tripkit/cmd"

func main() {
	cmd.Execute()
}
