package main

import (
	"fmt"
	"os"

	"github.com/f3rmion/gciphers/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd(os.Stdout, os.Stderr, nil)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
