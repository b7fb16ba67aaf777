package main

import "github.com/polancolabs/growthlab/internal/cli"

func main() {
	cli.Execute()
}
