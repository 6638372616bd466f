package main

import (
	"context"
	"os"

	"cvgen/internal/cli"
)

// main is a thin boundary: all argument handling and execution lives in the
// cli package so tests can drive it end to end.
func main() {
	result := cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(result.ExitCode)
}
