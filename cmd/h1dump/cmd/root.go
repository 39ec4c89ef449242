// Package cmd provides the CLI commands for h1dump.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var showBody bool

var rootCmd = &cobra.Command{
	Use:   "h1dump",
	Short: "h1dump - inspect raw HTTP/1.x messages",
	Long: `h1dump parses a captured raw HTTP/1.x message and reports how the
framing engine sees it: the parsed head, the connection-persistence and
100-continue decisions, and the body-delimiting strategy that would be
selected for it.

Examples:
  h1dump request capture.raw
  h1dump response --method HEAD capture.raw
  h1dump request --body capture.raw`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&showBody, "body", false, "decode and print the message body")
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
