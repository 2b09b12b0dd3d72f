package main

import (
	"github.com/spf13/cobra"

	"github.com/reoring/bylawkit/bylaw"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of a bylaw record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), bylaw.JSONSchema())
		},
	}
}

func newEnumsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enums",
		Short: "Print the canonical enumeration and flag literals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), bylaw.Enums())
		},
	}
}
