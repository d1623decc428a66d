package models

import (
	"errors"
	"fmt"
	"strings"
)

// Custom errors
var (
	ErrNotFound          = errors.New("record not found")
	ErrUnratedTeam       = errors.New("unrated team")
	ErrInvalidRating     = errors.New("invalid rating")
	ErrInvalidBaseline   = errors.New("invalid league baseline")
	ErrInvalidParameters = errors.New("invalid prediction parameters")
)

// DomainErrorKind tags the reason a prediction could not be computed
type DomainErrorKind string

const (
	KindUnratedTeam       DomainErrorKind = "unrated_team"
	KindInvalidRating     DomainErrorKind = "invalid_rating"
	KindInvalidBaseline   DomainErrorKind = "invalid_baseline"
	KindInvalidParameters DomainErrorKind = "invalid_parameters"
)

// DomainError is returned instead of a prediction when the inputs cannot produce one
type DomainError struct {
	Kind    DomainErrorKind
	Teams   []string
	Message string
}

// NewUnratedTeamError reports the team names missing from the rating source
func NewUnratedTeamError(teams ...string) *DomainError {
	return &DomainError{
		Kind:    KindUnratedTeam,
		Teams:   teams,
		Message: fmt.Sprintf("no rating for %s", strings.Join(teams, ", ")),
	}
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches the sentinel error for the kind
func (e *DomainError) Is(target error) bool {
	switch e.Kind {
	case KindUnratedTeam:
		return target == ErrUnratedTeam
	case KindInvalidRating:
		return target == ErrInvalidRating
	case KindInvalidBaseline:
		return target == ErrInvalidBaseline
	case KindInvalidParameters:
		return target == ErrInvalidParameters
	}
	return false
}

// AsDomainError unwraps err to a DomainError if there is one
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
