package main

import "github.com/nhle/tracker-mcp/cmd"

func main() {
	cmd.Execute()
}
