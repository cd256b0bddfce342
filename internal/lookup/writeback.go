package lookup

import (
	"context"

	"moviedb/internal/logging"
	"moviedb/internal/movie"
)

// Confirmer decides whether a single remote candidate should be stored.
type Confirmer interface {
	Confirm(ctx context.Context, candidate movie.Movie) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, candidate movie.Movie) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, candidate movie.Movie) (bool, error) {
	return f(ctx, candidate)
}

// WriteBackFailure pairs a candidate with the reason it was not stored.
type WriteBackFailure struct {
	Candidate movie.Movie
	Err       error
}

// WriteBackReport summarizes one WriteBack pass.
type WriteBackReport struct {
	Stored   []movie.Movie
	Rejected []movie.Movie
	Failed   []WriteBackFailure
}

// WriteBack asks confirm about each candidate in order and stores the
// accepted ones. A failure on one candidate is recorded and the loop moves on
// to the next. A cancelled context stops the loop and marks the remaining
// candidates as failed.
func (s *Service) WriteBack(ctx context.Context, candidates []movie.Movie, confirm Confirmer) WriteBackReport {
	var report WriteBackReport
	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			for _, rest := range candidates[i:] {
				report.Failed = append(report.Failed, WriteBackFailure{Candidate: rest, Err: err})
			}
			break
		}

		accepted, err := confirm.Confirm(ctx, candidate)
		if err != nil {
			report.Failed = append(report.Failed, WriteBackFailure{Candidate: candidate, Err: err})
			continue
		}
		if !accepted {
			s.logger.Debug("candidate rejected", logging.String("title", candidate.Title), logging.String("year", candidate.Year))
			report.Rejected = append(report.Rejected, candidate)
			continue
		}

		saved, err := s.ConfirmAdd(ctx, candidate)
		if err != nil {
			logging.WarnWithContext(s.logger, "candidate could not be stored", "writeback_failed",
				logging.String("title", candidate.Title),
				logging.Error(err),
				logging.String(logging.FieldImpact, "remaining candidates are still offered"),
			)
			report.Failed = append(report.Failed, WriteBackFailure{Candidate: candidate, Err: err})
			continue
		}
		report.Stored = append(report.Stored, saved)
	}
	return report
}
