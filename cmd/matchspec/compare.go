package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/condakit/matchspec/version"
)

var compareCmd = &cobra.Command{
	Use:   "compare <version> <version>",
	Short: "Compare two versions",
	Long:  `Compare two versions using conda version ordering and print the relation.`,
	Args:  cobra.ExactArgs(2),
	Example: `  matchspec compare 1.10.2 1.9
  matchspec compare 1.0a1 1.0`,
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	rel := "=="
	switch c := version.Compare(args[0], args[1]); {
	case c < 0:
		rel = "<"
	case c > 0:
		rel = ">"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", args[0], rel, args[1])
	return nil
}
