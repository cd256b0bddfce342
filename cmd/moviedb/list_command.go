package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moviedb/internal/movie"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show every stored movie",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			movies, err := st.All(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				if movies == nil {
					movies = []movie.Movie{}
				}
				return writeJSON(cmd, movies)
			}

			out := cmd.OutOrStdout()
			if len(movies) == 0 {
				fmt.Fprintln(out, "The local database is empty.")
				return nil
			}
			fmt.Fprintln(out, renderMovies(movies))
			fmt.Fprintf(out, "%s stored in %s\n", pluralize(len(movies), "movie", "movies"), st.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
