package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-prototxt"
)

func newFmtCmd(a *app) *cobra.Command {
	var (
		write  bool
		diff   bool
		indent int
	)
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat a configuration file",
		Long: `Parses the input and writes it back in canonical layout: one field per
line, nested messages indented, strings double-quoted. Comments are not
kept.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := a.read(args)
			if err != nil {
				return err
			}
			var extra []prototxt.Option
			if cmd.Flags().Changed("indent") {
				extra = append(extra, prototxt.Indent(indent))
			}
			opts, err := a.options(extra...)
			if err != nil {
				return err
			}
			doc, err := prototxt.Parse(src, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			out, err := prototxt.Marshal(doc, opts...)
			if err != nil {
				return err
			}

			switch {
			case diff:
				writeDiff(cmd.OutOrStdout(), name, string(src), string(out))
				return nil
			case write:
				if len(args) == 0 || args[0] == "-" || a.demo {
					return fmt.Errorf("-w needs a file argument")
				}
				if bytes.Equal(src, out) {
					return nil
				}
				info, err := os.Stat(args[0])
				if err != nil {
					return err
				}
				a.logger.Info("rewriting file", "path", args[0])
				return os.WriteFile(args[0], out, info.Mode().Perm())
			default:
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	cmd.Flags().BoolVarP(&diff, "diff", "d", false, "Print a line diff instead of the result")
	cmd.Flags().IntVar(&indent, "indent", 2, "Spaces per nesting level")
	return cmd
}

// writeDiff prints a line-oriented diff between before and after covering
// the whole file, without hunk headers. Nothing is printed when they are
// equal.
func writeDiff(w io.Writer, name, before, after string) {
	if before == after {
		return
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	fmt.Fprintf(w, "--- %s\n+++ %s (formatted)\n", name, name)
	for _, d := range diffs {
		prefix, c := " ", (*color.Color)(nil)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, c = "+", color.New(color.FgGreen)
		case diffmatchpatch.DiffDelete:
			prefix, c = "-", color.New(color.FgRed)
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = prefix + strings.TrimSuffix(line, "\n")
			if c != nil {
				line = c.Sprint(line)
			}
			fmt.Fprintln(w, line)
		}
	}
}
