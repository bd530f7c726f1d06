package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/dhamidi/streamparse/parse"
	"github.com/dhamidi/streamparse/scan"
	"github.com/dhamidi/streamparse/stream"
)

func newGroupsCmd() *cobra.Command {
	var openDelim string
	var closeDelim string

	cmd := &cobra.Command{
		Use:   "groups [file]",
		Short: "List every delimiter group in the input, innermost first",
		Long: `Matches a possibly nested group delimited by --open and --close at the
start of the input and lists every result the ambiguous group grammar
produces, one per nesting level.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, cleanup, err := openInput(args)
			if err != nil {
				return err
			}
			defer cleanup()

			open, err := singleRune("open", openDelim)
			if err != nil {
				return err
			}
			close, err := singleRune("close", closeDelim)
			if err != nil {
				return err
			}

			results, err := parse.Results(cmd.Context(), stream.FromRunes(in), scan.Groups(open, close))
			if err != nil {
				return fmt.Errorf("match groups: %w", err)
			}
			for _, r := range results {
				fmt.Printf("%d\t%q\n", r.Length, r.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&openDelim, "open", "(", "opening delimiter")
	cmd.Flags().StringVar(&closeDelim, "close", ")", "closing delimiter")
	return cmd
}

func singleRune(name, s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("--%s must be a single character, got %q", name, s)
	}
	return r, nil
}
