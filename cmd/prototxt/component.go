package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-prototxt"
	"github.com/KimNorgaard/go-prototxt/graph"
)

func newComponentCmd(a *app) *cobra.Command {
	var links bool
	cmd := &cobra.Command{
		Use:   "component NAME [file]",
		Short: "Print the declaration of one component",
		Long: `Prints every declaration of the named component as configuration text,
the way it is shown for editing when a node is selected in the chart.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, err := a.parse(args[1:])
			if err != nil {
				return err
			}
			data := graph.Extract(doc, a.cfg.Graph)
			comp, ok := data.Component(args[0])
			if !ok {
				return fmt.Errorf("component %q does not exist", args[0])
			}
			opts, err := a.options()
			if err != nil {
				return err
			}
			if err := prototxt.NewEncoder(cmd.OutOrStdout(), opts...).Encode(comp); err != nil {
				return err
			}
			if links {
				for _, l := range data.Incoming(args[0]) {
					fmt.Fprintf(cmd.OutOrStdout(), "# in  %s: %s -> %s (%s)\n", l.Graph, l.Source, l.Target, l.Type)
				}
				for _, l := range data.Outgoing(args[0]) {
					fmt.Fprintf(cmd.OutOrStdout(), "# out %s: %s -> %s (%s)\n", l.Graph, l.Source, l.Target, l.Type)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&links, "links", false, "Also list the links into and out of the component")
	return cmd
}

func newComponentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "components [file]",
		Short: "List declared components",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, err := a.parse(args)
			if err != nil {
				return err
			}
			data := graph.Extract(doc, a.cfg.Graph)

			var rows [][]string
			for _, c := range data.Components {
				rows = append(rows, []string{
					c.Name,
					c.Type,
					strconv.Itoa(len(data.Incoming(c.Name))),
					strconv.Itoa(len(data.Outgoing(c.Name))),
				})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"NAME", "TYPE", "IN", "OUT"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(rows)
			table.Render()
			return nil
		},
	}
}
