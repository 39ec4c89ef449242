package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-h1/pkg/h1"
)

var requestCmd = &cobra.Command{
	Use:   "request <file>",
	Short: "Parse a raw request message (use - for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0])
		if err != nil {
			return err
		}

		txn := h1.ServerTransaction{}
		head, n, err := txn.Parse(data)
		if err != nil {
			return err
		}
		if head == nil {
			return fmt.Errorf("incomplete head: missing the blank line ending the headers")
		}

		fmt.Printf("%s %s %s\n", head.Subject.Method, head.Subject.URI, head.Version)
		for _, hdr := range head.Headers {
			fmt.Printf("  %s: %s\n", hdr.Key, hdr.Value)
		}
		fmt.Printf("head bytes:         %d\n", n)
		fmt.Printf("keep-alive:         %v\n", h1.ShouldKeepAlive(head))
		fmt.Printf("expecting continue: %v\n", h1.ExpectingContinue(head))

		var mctx h1.MethodContext
		dec, err := txn.Decoder(head, &mctx)
		if err != nil {
			return err
		}
		fmt.Printf("body framing:       %s\n", dec.Mode())

		if showBody {
			return dumpBody(dec, data[n:])
		}
		return nil
	},
}

// dumpBody runs the remaining buffer through the decoder and writes the
// delimited body to stdout.
func dumpBody(dec *h1.Decoder, rest []byte) error {
	for len(rest) > 0 && dec.More() {
		data, n, err := dec.Decode(rest)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		if n == 0 {
			break
		}
		rest = rest[n:]
	}
	return dec.Finish()
}

func init() {
	rootCmd.AddCommand(requestCmd)
}
