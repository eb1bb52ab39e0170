package main

import "waymark/cmd/waymark-cli/cmd"

func main() {
	cmd.Execute()
}
