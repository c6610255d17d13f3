package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TechXTT/ydbc/pkg/types"
)

// NewTypesCmd builds the `types` command.
func NewTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the supported value kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tYQL\tGO TYPE")
			for _, k := range types.Kinds() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", k, k.YQLType(), k.HostType())
			}
			return w.Flush()
		},
	}
}
