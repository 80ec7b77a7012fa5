package commands

import (
	"fmt"

	"github.com/Sternrassler/pokeapi-client/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newGetCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "get KIND ID|NAME | get URL",
		Short: "Get a single resource",
		Long: `Fetch one resource by kind and id or name, or by its absolute API URL.

Names are normalized the way the API expects them, e.g. "Mr. Mime" is
requested as mr-mime.`,
		Example: `  pokeapi get pokemon 25
  pokeapi get pokemon "Mr. Mime" -o json
  pokeapi get https://pokeapi.co/api/v2/evolution-chain/10/`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(v)
			if err != nil {
				return err
			}
			defer c.Close()

			var result any
			if len(args) == 1 {
				result, err = client.ResolveURL(cmd.Context(), c, args[0])
			} else {
				result, err = client.FetchKind(cmd.Context(), c, args[0], args[1])
			}
			if err != nil {
				return fmt.Errorf("failed to get resource: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), v.GetString("output"), result, func() error {
				return renderResource(cmd.OutOrStdout(), result)
			})
		},
	}
}
