package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Convert a configuration file to JSON or YAML",
		Long: `Converts the parsed document to JSON or YAML. Repeated fields become
lists and field order is kept.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, err := a.parse(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				b, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(a.cfg.Indent)
				if err := enc.Encode(doc); err != nil {
					return err
				}
				return enc.Close()
			}
			return fmt.Errorf("unknown format %q, want json or yaml", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}
