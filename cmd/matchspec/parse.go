package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/condakit/matchspec"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse <spec>",
	Short: "Parse a match specification",
	Long:  `Parse a match specification and print its components.`,
	Args:  cobra.ExactArgs(1),
	Example: `  matchspec parse 'pytorch>=1.10.2'
  matchspec parse -j 'main/linux-64::pytorch>1.10.2'
  matchspec parse 'numpy=1.11=py36_0[subdir=linux-64]'`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVarP(&parseJSON, "json", "j", false, "Output in JSON format")
}

func runParse(cmd *cobra.Command, args []string) error {
	ms, err := matchspec.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid spec: %w", err)
	}

	if parseJSON {
		out, err := json.MarshalIndent(ms, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "package:      %s\n", ms.Package)
	if ms.Channel != "" {
		fmt.Fprintf(w, "channel:      %s\n", ms.Channel)
	}
	if ms.Subdir != "" {
		fmt.Fprintf(w, "subdir:       %s\n", ms.Subdir)
	}
	if ms.Namespace != "" {
		fmt.Fprintf(w, "namespace:    %s\n", ms.Namespace)
	}
	if ms.Version != nil {
		fmt.Fprintf(w, "version:      %s\n", ms.Version)
	}
	if ms.Build != "" {
		fmt.Fprintf(w, "build:        %s\n", ms.Build)
	}
	if ms.BuildNumber != nil {
		fmt.Fprintf(w, "build_number: %s\n", ms.BuildNumber)
	}
	fmt.Fprintf(w, "canonical:    %s\n", ms)
	return nil
}
