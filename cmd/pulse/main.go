package main

import "github.com/juliankahlert/pulse/internal/cli"

func main() {
	cli.Execute()
}
