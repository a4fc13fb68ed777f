package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/condakit/matchspec"
)

var (
	filterJSON  bool
	filterInput string
)

var filterCmd = &cobra.Command{
	Use:   "filter <spec>",
	Short: "Filter package records against a spec",
	Long: `Read package records as JSON and print the ones matching the spec.

Input is either a JSON array of package records or a repodata object
with "packages" and "packages.conda" maps.`,
	Args: cobra.ExactArgs(1),
	Example: `  matchspec filter 'python>=3.8,<3.12' -i repodata.json
  curl -s https://conda.anaconda.org/conda-forge/noarch/repodata.json | matchspec filter 'tqdm>=4'`,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().BoolVarP(&filterJSON, "json", "j", false, "Output in JSON format")
	filterCmd.Flags().StringVarP(&filterInput, "input", "i", "-", "Input file ('-' for stdin)")
}

func runFilter(cmd *cobra.Command, args []string) error {
	spec, err := matchspec.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid spec: %w", err)
	}

	var r io.Reader = cmd.InOrStdin()
	if filterInput != "-" {
		f, err := os.Open(filterInput)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	candidates, err := loadCandidates(r)
	if err != nil {
		return err
	}

	matched := matchspec.Filter(spec, candidates)

	if filterJSON {
		out, err := json.MarshalIndent(matched, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	} else {
		for i := range matched {
			fmt.Fprintln(cmd.OutOrStdout(), matched[i].String())
		}
	}

	if len(matched) == 0 {
		os.Exit(ExitNoMatch)
	}
	return nil
}

// repodata is the subset of the repodata.json schema the filter
// command reads.
type repodata struct {
	Packages      map[string]matchspec.PackageCandidate `json:"packages"`
	PackagesConda map[string]matchspec.PackageCandidate `json:"packages.conda"`
}

// loadCandidates decodes either a bare JSON array of package records
// or a repodata object. Repodata maps are flattened in filename order
// so output is deterministic.
func loadCandidates(r io.Reader) ([]matchspec.PackageCandidate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var list []matchspec.PackageCandidate
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var repo repodata
	if err := json.Unmarshal(data, &repo); err != nil {
		return nil, fmt.Errorf("decoding package records: %w", err)
	}
	names := make([]string, 0, len(repo.Packages)+len(repo.PackagesConda))
	for name := range repo.Packages {
		names = append(names, name)
	}
	for name := range repo.PackagesConda {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]matchspec.PackageCandidate, 0, len(names))
	for _, name := range names {
		if c, ok := repo.Packages[name]; ok {
			out = append(out, c)
		} else {
			out = append(out, repo.PackagesConda[name])
		}
	}
	return out, nil
}
