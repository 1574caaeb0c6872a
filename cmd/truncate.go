package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/colkit/pkg/textfilter"
)

func newTruncateCmd() *cobra.Command {
	var (
		maxLen int
		suffix string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "truncate <text>",
		Short: "Shorten text the way the ellipses property does",
		Long: `Truncate keeps the first --len characters of text and appends --suffix
when anything was cut. With --json the argument is decoded first, so
numbers and booleans are stringified before truncation and always use
the default suffix.`,
		Example: "  colkit truncate 'hello world' --len 5\n  colkit truncate 12345 --len 3 --json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value any = args[0]
			if asJSON {
				if err := json.Unmarshal([]byte(args[0]), &value); err != nil {
					return fmt.Errorf("decode --json argument: %w", err)
				}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), textfilter.Truncate(value, maxLen, suffix))
			return err
		},
	}
	cmd.Flags().IntVar(&maxLen, "len", textfilter.DefaultLength, "number of characters to keep")
	cmd.Flags().StringVar(&suffix, "suffix", textfilter.DefaultSuffix, "text appended when the value is cut")
	cmd.Flags().BoolVar(&asJSON, "json", false, "decode the argument as a JSON value")
	return cmd
}
