package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type options struct {
	input   string
	output  string
	noColor bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "group-colors",
		Short: "Group snapshot products by color inferred from their URL",
		Long: `group-colors reads a product snapshot (a JSON array, optionally gzip
compressed), infers each product's color from its URL slug and writes the
products grouped by color as indented JSON.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			return run(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "scuffers_output.json", "snapshot file to read")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "scuffers_grouped_by_color.json", "grouped JSON file to write")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

func run(opts *options, out io.Writer) error {
	if _, err := os.Stat(opts.input); err != nil {
		return fmt.Errorf("input file %s not found: %w", opts.input, err)
	}

	groups, skipped, err := groupFile(opts.input)
	if err != nil {
		return err
	}

	if err := writeGroups(opts.output, groups); err != nil {
		return err
	}

	printSummary(out, opts.output, groups, skipped)
	return nil
}

func printSummary(out io.Writer, outfile string, groups map[string][]map[string]any, skipped int) {
	header := color.New(color.FgGreen, color.Bold)
	key := color.New(color.FgCyan)

	header.Fprintf(out, "Grouped items written to %s\n", outfile)
	if skipped > 0 {
		color.New(color.FgYellow).Fprintf(out, "Skipped %d non-object entries\n", skipped)
	}
	fmt.Fprintln(out, "Counts by color:")
	for _, b := range countBuckets(groups) {
		fmt.Fprintf(out, "  %s: %d\n", key.Sprint(b.Key), b.DocCount)
	}
}
