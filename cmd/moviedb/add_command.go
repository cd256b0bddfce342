package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moviedb/internal/lookup"
	"moviedb/internal/services"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add OMDb's best match for a title to the local database",
		Long: `Look up a title and offer OMDb's single best match for storage.

Titles already in the local database are reported and left alone.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return services.Wrap(services.ErrInvalidInput, "cli", "add", "title must not be empty", nil)
			}
			d := decisionAsk
			if yes {
				d = decisionYes
			}
			defer ctx.close()

			svc, _, err := ctx.lookupService()
			if err != nil {
				return err
			}
			if !svc.RemoteEnabled() {
				return services.Wrap(services.ErrConfiguration, "cli", "add", "remote lookups are disabled; set omdb.api_key or OMDB_API_KEY", nil)
			}

			query := lookup.Query{Attribute: lookup.AttributeTitle, Value: title, BestMatch: true}
			result, err := svc.Lookup(cmd.Context(), query)
			if err != nil {
				return err
			}
			if result.Found() && result.Source == lookup.SourceLocal {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%q is already in the local database:\n", title)
				fmt.Fprintln(out, renderMovies(result.Candidates))
				return nil
			}
			return presentResult(cmd, svc, query, result, newPrompter(cmd, d))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Add the match without prompting")
	return cmd
}
