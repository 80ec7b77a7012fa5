package commands

import (
	"fmt"

	"github.com/Sternrassler/pokeapi-client/pkg/resource"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// kindSummary is the printable form of resource.KindInfo.
type kindSummary struct {
	Path  string `json:"path"`
	Named bool   `json:"named"`
}

func newKindsCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List supported resource kinds",
		Long:  "List the resource kinds this client knows and whether they can be fetched by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var kinds []kindSummary
			for _, info := range resource.Kinds() {
				kinds = append(kinds, kindSummary{Path: info.Path, Named: info.Named})
			}

			return writeOutput(cmd.OutOrStdout(), v.GetString("output"), kinds, func() error {
				table := tablewriter.NewWriter(cmd.OutOrStdout())
				table.Header("Kind", "By Name")
				for _, k := range kinds {
					_ = table.Append(k.Path, fmt.Sprintf("%t", k.Named))
				}
				return table.Render()
			})
		},
	}
}
