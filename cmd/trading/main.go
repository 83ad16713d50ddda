package main

import "github.com/andrescamacho/trading-engine-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
