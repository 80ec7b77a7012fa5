package commands

import (
	"fmt"

	"github.com/Sternrassler/pokeapi-client/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newResolveCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve URL...",
		Short: "Resolve navigation links",
		Long: `Resolve one or more absolute API URLs concurrently. Results are printed in
argument order. If any URL fails, nothing is printed.`,
		Example: `  pokeapi resolve https://pokeapi.co/api/v2/type/13/ https://pokeapi.co/api/v2/ability/9/`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(v)
			if err != nil {
				return err
			}
			defer c.Close()

			results, err := client.ResolveURLs(cmd.Context(), c, args)
			if err != nil {
				return fmt.Errorf("failed to resolve: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), v.GetString("output"), results, func() error {
				for i, result := range results {
					if i > 0 {
						fmt.Fprintln(cmd.OutOrStdout())
					}
					fmt.Fprintln(cmd.OutOrStdout(), args[i])
					if err := renderResource(cmd.OutOrStdout(), result); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
