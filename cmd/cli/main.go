package main

import (
	"context"
	"os"

	"local-auth-service/cmd/cli/commands"
)

func main() {
	if err := commands.Execute(context.Background(), commands.DefaultBuilder, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
