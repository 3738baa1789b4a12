package main

import (
	"fmt"
	"io"
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
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "jsonedit",
		Short: "Edit JSON documents in the browser",
		Long: `jsonedit serves a live editor for one JSON document.

Every value in the document can be switched between null, string,
number, array and object. Arrays and objects support adding, removing
and reordering entries. Each committed edit is saved to the configured
store and, optionally, published to a change feed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to jsonedit.yaml (default $JSONEDIT_CONFIG or ./jsonedit.yaml)")

	rootCmd.AddCommand(
		serveCmd(&configPath),
		printCmd(&configPath),
		fmtCmd(),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
