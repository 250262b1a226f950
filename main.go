package main

import "github.com/mittwald/identityprobe/cmd"

func main() {
	cmd.Execute()
}
