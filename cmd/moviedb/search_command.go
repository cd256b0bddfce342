package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"moviedb/internal/lookup"
	"moviedb/internal/movie"
)

type searchOutput struct {
	Status     lookup.Status `json:"status"`
	Source     lookup.Source `json:"source"`
	Candidates []movie.Movie `json:"candidates"`
	Stored     []movie.Movie `json:"stored,omitempty"`
	Error      string        `json:"error,omitempty"`
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		by      string
		best    bool
		yes     bool
		no      bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "search [value]",
		Short: "Search the local database, falling back to OMDb for titles",
		Long: `Search stored movies by title, actor, director, genre, or year.

Title searches that find nothing locally are sent to OMDb. Each remote
candidate is shown and must be confirmed before it is added to the local
database. Searches by any other attribute never leave the local database.`,
		Example: `  moviedb search Inception
  moviedb search --by actor "Keanu Reeves"
  moviedb search --by year 1999
  moviedb search Dune --no --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			attr, err := lookup.ParseAttribute(by)
			if err != nil {
				return err
			}
			d, err := decisionFromFlags(yes, no)
			if err != nil {
				return err
			}
			defer ctx.close()

			svc, _, err := ctx.lookupService()
			if err != nil {
				return err
			}
			query := lookup.Query{Attribute: attr, Value: strings.Join(args, " "), BestMatch: best}
			result, err := svc.Lookup(cmd.Context(), query)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeSearchJSON(cmd, svc, result, d)
			}
			return presentResult(cmd, svc, query, result, newPrompter(cmd, d))
		},
	}

	cmd.Flags().StringVar(&by, "by", string(lookup.AttributeTitle), "Attribute to search: title, actor, director, genre, year")
	cmd.Flags().BoolVar(&best, "best", false, "Ask OMDb for a single best match instead of every search hit")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Add every remote candidate without prompting")
	cmd.Flags().BoolVarP(&no, "no", "n", false, "Decline every remote candidate without prompting")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

// presentResult renders provenance first, then the candidates, then runs the
// per-candidate confirmation loop for remote results.
func presentResult(cmd *cobra.Command, svc *lookup.Service, query lookup.Query, result lookup.Result, p *prompter) error {
	out := cmd.OutOrStdout()
	switch result.Status {
	case lookup.StatusRemoteError:
		fmt.Fprintln(out, "The remote catalog could not be reached; nothing was stored. Try again later.")
		return result.Err
	case lookup.StatusNotFound:
		fmt.Fprintln(out, notFoundMessage(query, svc.RemoteEnabled()))
		return nil
	}

	if result.Source == lookup.SourceLocal {
		fmt.Fprintf(out, "Found %s in the local database:\n", pluralize(len(result.Candidates), "movie", "movies"))
		fmt.Fprintln(out, renderMovies(result.Candidates))
		return nil
	}

	fmt.Fprintf(out, "Not in the local database. OMDb returned %s:\n", pluralize(len(result.Candidates), "candidate", "candidates"))
	fmt.Fprintln(out, renderMovies(result.Candidates))

	report := svc.WriteBack(cmd.Context(), result.Candidates, p.candidateConfirmer())
	printWriteBackReport(out, report)
	return writeBackError(report)
}

func writeSearchJSON(cmd *cobra.Command, svc *lookup.Service, result lookup.Result, d decision) error {
	payload := searchOutput{
		Status:     result.Status,
		Source:     result.Source,
		Candidates: result.Candidates,
	}
	if payload.Candidates == nil {
		payload.Candidates = []movie.Movie{}
	}
	if result.Err != nil {
		payload.Error = result.Err.Error()
	}
	if result.NeedsConfirmation() && d == decisionYes {
		report := svc.WriteBack(cmd.Context(), result.Candidates, lookup.ConfirmFunc(acceptAll))
		payload.Stored = report.Stored
		if err := writeJSON(cmd, payload); err != nil {
			return err
		}
		return writeBackError(report)
	}
	if err := writeJSON(cmd, payload); err != nil {
		return err
	}
	return result.Err
}

func notFoundMessage(query lookup.Query, remoteEnabled bool) string {
	value := strings.TrimSpace(query.Value)
	if query.Attribute == lookup.AttributeTitle && value == "" {
		return "The local database is empty."
	}
	msg := fmt.Sprintf("No movies found for %s %q.", query.Attribute, value)
	if query.Attribute == lookup.AttributeTitle && !remoteEnabled {
		msg += " Remote lookups are disabled; set omdb.api_key to enable them."
	}
	return msg
}

func printWriteBackReport(out io.Writer, report lookup.WriteBackReport) {
	for _, failure := range report.Failed {
		fmt.Fprintf(out, "Could not add %s: %v\n", failure.Candidate.Label(), failure.Err)
	}
	fmt.Fprintf(out, "Added %d, skipped %d, failed %d.\n", len(report.Stored), len(report.Rejected), len(report.Failed))
}

// writeBackError surfaces the first failure so the exit status reflects it.
func writeBackError(report lookup.WriteBackReport) error {
	if len(report.Failed) == 0 {
		return nil
	}
	first := report.Failed[0]
	if errors.Is(first.Err, errNoTerminal) {
		return errNoTerminal
	}
	return fmt.Errorf("add %s: %w", first.Candidate.Label(), first.Err)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
