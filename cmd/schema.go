package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/caas-team/healthprobe/pkg/probe"
)

// NewCmdSchema creates a new schema command
func NewCmdSchema() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the schema of the JSON report",
		Long:  `Print the openapi schema of the result that is written with --json`,
		Args:  cobra.NoArgs,
		RunE:  runSchema(&format),
	}

	cmd.Flags().StringVarP(&format, "output", "o", "yaml", "output format of the schema, one of yaml or json")

	return cmd
}

// runSchema prints the result schema in the requested format
func runSchema(format *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ref, err := probe.Schema()
		if err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		b, err := json.MarshalIndent(ref, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}

		switch *format {
		case "json":
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		case "yaml":
			// json is valid yaml, decoding into a node keeps the key order
			var node yaml.Node
			if err := yaml.Unmarshal(b, &node); err != nil {
				return fmt.Errorf("failed to convert schema: %w", err)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(&node); err != nil {
				return fmt.Errorf("failed to encode schema: %w", err)
			}
			return enc.Close()
		default:
			return fmt.Errorf("unsupported output format %q", *format)
		}
	}
}
