package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"moviedb/internal/lookup"
	"moviedb/internal/movie"
)

var errNoTerminal = errors.New("confirmation needs an interactive terminal; pass --yes or --no")

// decision is the answer fixed by --yes / --no, if any.
type decision int

const (
	decisionAsk decision = iota
	decisionYes
	decisionNo
)

func decisionFromFlags(yes, no bool) (decision, error) {
	switch {
	case yes && no:
		return decisionAsk, errors.New("--yes and --no are mutually exclusive")
	case yes:
		return decisionYes, nil
	case no:
		return decisionNo, nil
	default:
		return decisionAsk, nil
	}
}

// prompter asks y/n questions on the command's streams. A fixed decision
// answers without reading input.
type prompter struct {
	in       *bufio.Reader
	out      io.Writer
	decision decision
	terminal bool
}

func newPrompter(cmd *cobra.Command, d decision) *prompter {
	input := cmd.InOrStdin()
	return &prompter{
		in:       bufio.NewReader(input),
		out:      cmd.OutOrStdout(),
		decision: d,
		terminal: isInteractive(input),
	}
}

// isInteractive reports whether r can answer prompts. Piped or redirected
// stdin cannot; readers supplied programmatically can.
func isInteractive(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return true
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *prompter) confirm(question string) (bool, error) {
	switch p.decision {
	case decisionYes:
		fmt.Fprintf(p.out, "%s [y/N]: y\n", question)
		return true, nil
	case decisionNo:
		fmt.Fprintf(p.out, "%s [y/N]: n\n", question)
		return false, nil
	}
	if !p.terminal {
		return false, errNoTerminal
	}

	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if errors.Is(err, io.EOF) && answer == "" {
		fmt.Fprintln(p.out)
		return false, io.ErrUnexpectedEOF
	}
	return answer == "y" || answer == "yes", nil
}

// candidateConfirmer adapts the prompter to lookup.Confirmer.
func (p *prompter) candidateConfirmer() lookup.Confirmer {
	return lookup.ConfirmFunc(func(ctx context.Context, candidate movie.Movie) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		return p.confirm(fmt.Sprintf("Add %q to the local database?", candidate.Label()))
	})
}

func acceptAll(context.Context, movie.Movie) (bool, error) {
	return true, nil
}
