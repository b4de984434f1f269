package main

import "go-pos-terminal/internal/cli"

func main() {
	cli.Execute()
}
