package main

import "github.com/forPelevin/prclips/internal/cli"

func main() {
	cli.Main()
}
