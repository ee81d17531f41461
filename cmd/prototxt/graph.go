package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-prototxt/graph"
)

func newGraphCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Export the pipeline graph",
		Long: `Reads the graph declarations of a pipeline configuration and prints
them as a Mermaid flowchart or as the JSON node/link lists consumed by the
browser chart.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, err := a.parse(args)
			if err != nil {
				return err
			}
			data := graph.Extract(doc, a.cfg.Graph)
			a.logger.Debug("graph extracted", "graphs", len(data.Graphs), "links", len(data.Links), "nodes", len(data.Nodes))

			out := cmd.OutOrStdout()
			switch format {
			case "mermaid":
				_, err = fmt.Fprint(out, data.Mermaid())
				return err
			case "json":
				b, err := data.JSON()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			}
			return fmt.Errorf("unknown format %q, want mermaid or json", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "mermaid", "Output format: mermaid or json")
	return cmd
}
