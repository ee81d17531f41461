package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KimNorgaard/go-prototxt"
	"github.com/KimNorgaard/go-prototxt/graph"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		checkGraph bool
		strict     bool
	)
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Check that files parse",
		Long: `Parses every file and reports syntax errors with their position. Files
are checked concurrently and reported in argument order. With --graph,
links that name undeclared components are reported as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := [][]string{nil}
			if len(args) > 0 && !a.demo {
				inputs = inputs[:0]
				for _, arg := range args {
					inputs = append(inputs, []string{arg})
				}
			}

			results := make([]checkResult, len(inputs))
			var g errgroup.Group
			g.SetLimit(runtime.GOMAXPROCS(0))
			for i, in := range inputs {
				g.Go(func() error {
					r := &results[i]
					r.name, r.doc, r.err = a.parse(in)
					if r.err == nil && checkGraph {
						r.problems = graph.Extract(r.doc, a.cfg.Graph).Validate()
					}
					return nil
				})
			}
			// Results carry their own errors.
			_ = g.Wait()

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if r.err != nil {
					failed++
					var perr *prototxt.ParseError
					if errors.As(r.err, &perr) {
						fmt.Fprintln(out, color.RedString("%s:%d:%d: %s", r.name, perr.Line, perr.Column, perr.Message),
							expectation(perr))
					} else {
						fmt.Fprintln(out, color.RedString("%v", r.err))
					}
					continue
				}
				for _, p := range r.problems {
					fmt.Fprintln(out, color.YellowString("%s: %v", r.name, p))
				}
				if strict && len(r.problems) > 0 {
					failed++
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", r.name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkGraph, "graph", false, "Also check graph links against declared components")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat graph problems as failures")
	return cmd
}

// checkResult is the outcome of checking one input.
type checkResult struct {
	name     string
	doc      *prototxt.Document
	err      error
	problems []graph.Problem
}

func expectation(perr *prototxt.ParseError) string {
	switch len(perr.Expected) {
	case 0:
		return ""
	case 1:
		return "(expected " + perr.Expected[0] + ")"
	}
	return fmt.Sprintf("(expected one of %v)", perr.Expected)
}
