package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moviedb/internal/services"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <title>",
		Aliases: []string{"rm"},
		Short:   "Delete the first stored movie matching a title",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return services.Wrap(services.ErrInvalidInput, "cli", "delete", "title must not be empty", nil)
			}
			d := decisionAsk
			if yes {
				d = decisionYes
			}
			defer ctx.close()

			svc, st, err := ctx.lookupService()
			if err != nil {
				return err
			}
			matches, err := st.QueryByTitle(cmd.Context(), title)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintf(out, "No stored movie matches %q.\n", title)
				return nil
			}

			target := matches[0]
			fmt.Fprintln(out, renderMovies(matches[:1]))
			ok, err := newPrompter(cmd, d).confirm(fmt.Sprintf("Delete %q from the local database?", target.Label()))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Nothing deleted.")
				return nil
			}
			if err := svc.Delete(cmd.Context(), target); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted %s.\n", target.Label())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without prompting")
	return cmd
}
