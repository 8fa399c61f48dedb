package main

import "github.com/ppiankov/turnwatch/internal/cli"

func main() {
	cli.Execute()
}
