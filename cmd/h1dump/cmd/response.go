package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-h1/pkg/h1"
)

var requestMethod string

var responseCmd = &cobra.Command{
	Use:   "response <file>",
	Short: "Parse a raw response message (use - for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0])
		if err != nil {
			return err
		}

		txn := h1.ClientTransaction{}
		head, n, err := txn.Parse(data)
		if err != nil {
			return err
		}
		if head == nil {
			return fmt.Errorf("incomplete head: missing the blank line ending the headers")
		}

		fmt.Printf("%s %d %s\n", head.Version, int(head.Subject), head.Subject.Reason())
		for _, hdr := range head.Headers {
			fmt.Printf("  %s: %s\n", hdr.Key, hdr.Value)
		}
		fmt.Printf("head bytes:         %d\n", n)
		fmt.Printf("keep-alive:         %v\n", h1.ShouldKeepAlive(head))

		var mctx h1.MethodContext
		if requestMethod != "" {
			mctx.Set(requestMethod)
		}
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

func init() {
	responseCmd.Flags().StringVar(&requestMethod, "method", "", "method of the request this response answers (affects framing, e.g. HEAD)")
	rootCmd.AddCommand(responseCmd)
}
