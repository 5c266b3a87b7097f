package main

import "github.com/arthur-debert/nanoshelf/cmd/nanoshelf/cmd"

func main() {
	cmd.Execute()
}
