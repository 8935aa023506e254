package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/extract"
)

func newParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [text]",
		Short: "Run the payment-text extractor and print what it finds",
		Long: "Parses payment-app screenshot text given as an argument, or read from\n" +
			"stdin when no argument is given, and prints the extracted fields.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) > 0 {
				text = args[0]
			} else {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = string(data)
			}

			info, err := extract.Extract(text)

			var lce *extract.LowConfidenceError
			if errors.As(err, &lce) {
				fmt.Fprintf(cmd.OutOrStdout(), "low confidence: %s\n", lce.Reason)
				if !lce.Partial.Amount.IsZero() {
					fmt.Fprintf(cmd.OutOrStdout(), "  partial amount:    %s\n", lce.Partial.Amount)
				}
				if lce.Partial.Direction != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  partial direction: %s\n", lce.Partial.Direction)
				}
				if lce.Partial.Timestamp != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  partial timestamp: %s\n", lce.Partial.Timestamp)
				}
				return err
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "amount:       %s\n", info.Amount)
			direction := string(info.Direction)
			if info.DirectionAmbiguous {
				direction += " (ambiguous)"
			}
			fmt.Fprintf(out, "direction:    %s\n", direction)
			fmt.Fprintf(out, "channel:      %s\n", info.Channel)
			if info.Counterparty != "" {
				fmt.Fprintf(out, "counterparty: %s\n", info.Counterparty)
			}
			if info.Timestamp != "" {
				fmt.Fprintf(out, "timestamp:    %s\n", info.Timestamp)
			}
			return nil
		},
	}

	return cmd
}
