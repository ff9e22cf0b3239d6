package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dbtabs",
		Short: "Inspect and build table-tab URLs",
		Long: `dbtabs works with URLs that carry table-browser tab state in their
query parameters:

  t   JSON array of open tables, e.g. [[3,-1,-1,["name","a"]],[7]]
  a   id of the active table

Every command is a pure transformation: it reads a URL (or nothing),
prints the result, and persists nothing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		decodeCmd(),
		linkCmd(),
		addCmd(),
		removeCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
