package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mocksmith/mocksmith"
	"github.com/mocksmith/mocksmith/cmd/mocksmith/commands"
	"github.com/mocksmith/mocksmith/internal/mcpserver"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("mocksmith v%s\n", mocksmith.Version())
	case "help", "-h", "--help":
		printUsage()
	case "import":
		if err := commands.HandleImport(os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := mcpserver.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`mocksmith v%s - compile OpenAPI specifications into mock service definitions

Usage: mocksmith <command> [flags] [arguments]

Commands:
  import    Compile an OpenAPI specification into a mock service definition
  mcp       Run the MCP server over stdio
  version   Print the version
  help      Print this help

Run 'mocksmith <command> -h' for command-specific flags.
`, mocksmith.Version())
}
