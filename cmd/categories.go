package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/littlemath/internal/problem"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List practice categories",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-12s  %s\n", "ID", "Name")
		for _, c := range problem.Categories() {
			fmt.Fprintf(out, "%-12s  %s %s\n", c.ID, c.Icon, c.Name)
		}
	},
}
