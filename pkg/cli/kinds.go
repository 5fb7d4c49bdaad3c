package cli

import (
	"fmt"

	"github.com/platinummonkey/flowsearch/pkg/search/matchers"
	"github.com/spf13/cobra"
)

func newKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the component kinds that can be searched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := matchers.DefaultRegistry()
			if err != nil {
				return err
			}
			for _, kind := range registry.Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), kind)
			}
			return nil
		},
	}
}
