package main

import "github.com/paroles-live/paroles/cmd"

func main() {
	cmd.Execute()
}
