package commands

import (
	"fmt"
	"io"

	"github.com/Sternrassler/pokeapi-client/pkg/client"
	"github.com/Sternrassler/pokeapi-client/pkg/resource"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newListCommand(v *viper.Viper) *cobra.Command {
	var (
		limit  int
		offset int
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "list KIND",
		Short: "List a resource collection",
		Long: `List one page of a resource collection, or the whole collection with --all.

Without --limit and --offset the API's default paging applies.`,
		Example: `  pokeapi list pokemon --limit 50 --offset 100
  pokeapi list berry --all -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(v)
			if err != nil {
				return err
			}
			defer c.Close()

			if all {
				links, err := client.FetchKindAll(cmd.Context(), c, args[0])
				if err != nil {
					return fmt.Errorf("failed to list %s: %w", args[0], err)
				}
				return writeOutput(cmd.OutOrStdout(), v.GetString("output"), links, func() error {
					return renderLinks(cmd.OutOrStdout(), links)
				})
			}

			var limitPtr, offsetPtr *int
			if cmd.Flags().Changed("limit") {
				limitPtr = &limit
			}
			if cmd.Flags().Changed("offset") {
				offsetPtr = &offset
			}

			page, err := client.FetchKindPage(cmd.Context(), c, args[0], limitPtr, offsetPtr)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", args[0], err)
			}

			return writeOutput(cmd.OutOrStdout(), v.GetString("output"), page, func() error {
				return renderPage(cmd.OutOrStdout(), page)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of results per page")
	cmd.Flags().IntVar(&offset, "offset", 0, "index of the first result")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page of the collection")
	cmd.MarkFlagsMutuallyExclusive("all", "limit")
	cmd.MarkFlagsMutuallyExclusive("all", "offset")

	return cmd
}

func renderPage(w io.Writer, page *resource.Page[any]) error {
	if err := renderLinks(w, page.Results); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nShowing %d of %d", len(page.Results), page.Count)
	if offset, ok := page.NextOffset(); ok {
		fmt.Fprintf(w, ", next offset %s", offset)
	}
	fmt.Fprintln(w)
	return nil
}
