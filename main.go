package main

import "github.com/voithos/awl/cmd"

func main() {
	cmd.Execute()
}
