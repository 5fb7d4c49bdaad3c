package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/orchestrator"
	"github.com/platinummonkey/flowsearch/pkg/search/matchers"
	"github.com/spf13/cobra"
)

type searchOptions struct {
	flowPath         string
	workers          int
	jsonOutput       bool
	allowUnsupported bool
}

func newSearchCommand(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search a flow file",
		Long: `Search every component of a flow file and print the matches grouped by kind.

The query is a search term optionally prefixed with filters:
  kind:<kind>     only search components of one kind
  group:<id|name> only search inside one process group`,
		Example: `  flowsearch search --flow flow.yaml csv
  flowsearch search --flow flow.yaml 'group:"error handling" fail'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, root, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&opts.flowPath, "flow", "f", "flow.yaml", "Flow file to search")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", orchestrator.DefaultConfig().MaxWorkers, "Concurrent component matchers")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&opts.allowUnsupported, "allow-unsupported", false, "Skip components without a matcher instead of failing")

	return cmd
}

func runSearch(cmd *cobra.Command, root *rootOptions, opts *searchOptions, raw string) error {
	log, err := root.logger(cmd, "warn", "text")
	if err != nil {
		return err
	}

	graph, err := flow.LoadFile(opts.flowPath)
	if err != nil {
		return err
	}

	registry, err := matchers.DefaultRegistry()
	if err != nil {
		return err
	}

	config := orchestrator.DefaultConfig()
	config.MaxWorkers = opts.workers
	config.FailOnUnsupported = !opts.allowUnsupported
	config.CacheEnabled = false

	orch, err := orchestrator.New(registry, config, orchestrator.WithLogger(log))
	if err != nil {
		return err
	}

	results, err := orch.Search(cmd.Context(), graph, raw)
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}
	return printResults(cmd.OutOrStdout(), results)
}

func printResults(out io.Writer, results *orchestrator.Results) error {
	if results.Total() == 0 {
		_, err := fmt.Fprintf(out, "No components match %q\n", results.Query)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, kind := range flow.Kinds() {
		group := results.ByKind(kind)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d)\n", kind, len(group))
		for _, result := range group {
			fmt.Fprintf(w, "  %s\t%s\n", result.ID, result.Name)
			for _, match := range result.Matches {
				fmt.Fprintf(w, "    \t%s\n", match)
			}
		}
	}
	if results.Skipped > 0 {
		fmt.Fprintf(w, "\n%d components skipped without a matcher\n", results.Skipped)
	}
	fmt.Fprintf(w, "\n%d matching components\n", results.Total())
	return w.Flush()
}
