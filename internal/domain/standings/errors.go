package standings

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSnapshotUnavailable is returned by lookups before the first snapshot is published.
var ErrSnapshotUnavailable = errors.New("standings snapshot not yet available")

// ErrDuplicateTeam marks a table that lists the same team twice.
var ErrDuplicateTeam = errors.New("duplicate team name")

// Build stages reported by StageOf.
const (
	StageExtract     = "extract"
	StageNormalize   = "normalize"
	StageForm        = "form"
	StageConsistency = "consistency"
	StageUnknown     = "unknown"
)

// ExtractionError reports a missing table or a malformed row.
// Row is 1-based over body rows; zero means the failure is not tied to a row.
type ExtractionError struct {
	Row    int
	Cells  int
	Reason string
}

func (e *ExtractionError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("extract standings: row %d has %d cells, want %d", e.Row, e.Cells, ColumnCount)
	}
	return "extract standings: " + e.Reason
}

// NormalizationError reports a field that could not be converted into a Standing.
type NormalizationError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *NormalizationError) Error() string {
	var b strings.Builder
	b.WriteString("normalize standings")
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	fmt.Fprintf(&b, ": field %s", e.Field)
	if e.Value != "" {
		fmt.Fprintf(&b, " value %q", e.Value)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *NormalizationError) Unwrap() error { return e.Err }

// FormDecodeError reports a non-blank form field with no classifiable tokens.
type FormDecodeError struct {
	Team string
	Raw  string
}

func (e *FormDecodeError) Error() string {
	if e.Team != "" {
		return fmt.Sprintf("decode form for %s: no results in %q", e.Team, e.Raw)
	}
	return fmt.Sprintf("decode form: no results in %q", e.Raw)
}

// ConsistencyError reports diverging standings and form key sets.
type ConsistencyError struct {
	MissingForms     []string
	MissingStandings []string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("standings and forms disagree: missing forms %v, missing standings %v", e.MissingForms, e.MissingStandings)
}

// UnknownTeamError is returned when a lookup matches no team in the snapshot.
type UnknownTeamError struct {
	Attempted  string
	ValidNames []string
}

func (e *UnknownTeamError) Error() string {
	return fmt.Sprintf("unknown team %q", e.Attempted)
}

// AsUnknownTeamError unwraps err into an UnknownTeamError.
func AsUnknownTeamError(err error) (*UnknownTeamError, bool) {
	var target *UnknownTeamError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// StageOf names the pipeline stage that produced err.
func StageOf(err error) string {
	var (
		extractErr     *ExtractionError
		normalizeErr   *NormalizationError
		formErr        *FormDecodeError
		consistencyErr *ConsistencyError
	)
	switch {
	case errors.As(err, &extractErr):
		return StageExtract
	case errors.As(err, &normalizeErr):
		return StageNormalize
	case errors.As(err, &formErr):
		return StageForm
	case errors.As(err, &consistencyErr):
		return StageConsistency
	default:
		return StageUnknown
	}
}
