package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/davicafu/detailstream/internal/entity"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the entity types that tail can decode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTypes(cmd.OutOrStdout(), entity.Default())
	},
}

func printTypes(out io.Writer, registry *entity.Registry) error {
	for _, tag := range registry.Tags() {
		if _, err := fmt.Fprintln(out, tag); err != nil {
			return err
		}
	}
	return nil
}
