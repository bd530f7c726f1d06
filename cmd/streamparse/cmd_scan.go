package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/streamparse/parse"
	"github.com/dhamidi/streamparse/scan"
	"github.com/dhamidi/streamparse/stream"
)

func newScanCmd() *cobra.Command {
	var grammarName string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Scan input with a built-in grammar and list every match",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, cleanup, err := openInput(args)
			if err != nil {
				return err
			}
			defer cleanup()

			grammar, err := grammarByName(grammarName)
			if err != nil {
				return err
			}
			printMatch, err := matchPrinter(outputFormat)
			if err != nil {
				return err
			}

			log := commonlog.GetLogger("streamparse.scan")
			err = parse.Each(cmd.Context(), stream.FromRunes(in), grammar, func(m parse.Match[string]) bool {
				printMatch(m)
				return true
			}, parse.WithLogger(log))
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&grammarName, "grammar", "g", "number", "grammar to run (number, digits, word, quoted, csv)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, color, json)")
	return cmd
}

func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func grammarByName(name string) (parse.Parser[rune, string], error) {
	switch name {
	case "number":
		return scan.Number(), nil
	case "digits":
		return scan.Digits(), nil
	case "word":
		return scan.Word(), nil
	case "quoted":
		return scan.Quoted('"'), nil
	case "csv":
		return parse.Map(scan.CSVRecord(), func(fields []string) string {
			return strings.Join(fields, " | ")
		}), nil
	default:
		return nil, fmt.Errorf("unknown grammar: %s", name)
	}
}

func matchPrinter(format string) (func(parse.Match[string]), error) {
	switch format {
	case "text":
		return func(m parse.Match[string]) {
			fmt.Printf("%d\t%d\t%q\n", m.Index, m.Length, m.Value)
		}, nil
	case "color":
		index := color.New(color.FgCyan)
		value := color.New(color.FgGreen)
		return func(m parse.Match[string]) {
			index.Printf("%8d +%-4d ", m.Index, m.Length)
			value.Printf("%q\n", m.Value)
		}, nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		return func(m parse.Match[string]) {
			enc.Encode(map[string]any{
				"index":  m.Index,
				"length": m.Length,
				"value":  m.Value,
			})
		}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
