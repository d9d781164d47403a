package main

import "github.com/Karlmann7/geopdes/cmd"

func main() {
	cmd.Execute()
}
