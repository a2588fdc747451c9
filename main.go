package main

import "github.com/S2G-Investments/headshot-processor/cmd"

func main() {
	cmd.Execute()
}
