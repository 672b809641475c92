package content

import (
	"context"

	"pokelearn/internal/models"
)

// Source supplies quiz content. Implementations return an empty slice, not an
// error, when they are reachable but hold no records.
type Source interface {
	FetchChallenges(ctx context.Context) ([]models.Challenge, error)
	FetchChallengeSets(ctx context.Context) ([]models.ChallengeSet, error)
}

// Status is the outcome of asking the primary source for records
type Status int

const (
	StatusSuccess Status = iota
	StatusEmpty
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	default:
		return "error"
	}
}

// Result carries primary-source records together with how the fetch went.
// Only StatusSuccess results are served; the other two fall back to the bundle.
type Result[T any] struct {
	Records []T
	Status  Status
	Err     error
}

func resultOf[T any](records []T, err error) Result[T] {
	switch {
	case err != nil:
		return Result[T]{Status: StatusError, Err: err}
	case len(records) == 0:
		return Result[T]{Status: StatusEmpty}
	default:
		return Result[T]{Records: records, Status: StatusSuccess}
	}
}
