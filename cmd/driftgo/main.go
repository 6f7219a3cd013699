package main

import (
	"context"
	"fmt"
	"os"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	rootCmd := NewRootCmd(version)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "driftgo: %v\n", err)
		os.Exit(1)
	}
}
