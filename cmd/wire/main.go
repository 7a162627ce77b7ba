package main

import "github.com/tmulin/wire/internal/cli"

func main() {
	cli.Execute()
}
