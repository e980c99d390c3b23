package parser

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
)

var recordValidator = validator.New(validator.WithRequiredStructEnabled())

// numericColumns lists every column parsed as an integer, in column order.
var numericColumns = []int{
	standings.ColPosition,
	standings.ColPlayed,
	standings.ColWon,
	standings.ColDrawn,
	standings.ColLost,
	standings.ColGoalsFor,
	standings.ColGoalsAgainst,
	standings.ColGoalDifference,
	standings.ColPoints,
}

// NormalizeRow converts a raw row into a Standing. The form column is ignored.
func NormalizeRow(row standings.RawRow) (standings.Standing, error) {
	var values [standings.ColumnCount]int
	for _, col := range numericColumns {
		n, err := parseInt(row[col])
		if err != nil {
			return standings.Standing{}, &standings.NormalizationError{
				Field: standings.ColumnNames[col],
				Value: row[col],
				Err:   err,
			}
		}
		values[col] = n
	}

	rec := standings.Standing{
		Position:       values[standings.ColPosition],
		Name:           strings.TrimSpace(row[standings.ColName]),
		Played:         values[standings.ColPlayed],
		Won:            values[standings.ColWon],
		Drawn:          values[standings.ColDrawn],
		Lost:           values[standings.ColLost],
		GoalsFor:       values[standings.ColGoalsFor],
		GoalsAgainst:   values[standings.ColGoalsAgainst],
		GoalDifference: values[standings.ColGoalDifference],
		Points:         values[standings.ColPoints],
	}
	if err := recordValidator.Struct(rec); err != nil {
		return standings.Standing{}, &standings.NormalizationError{
			Field: standings.ColumnNames[standings.ColName],
			Value: row[standings.ColName],
			Err:   err,
		}
	}
	return rec, nil
}

// NormalizeRows converts rows in order, stopping at the first failure.
func NormalizeRows(rows []standings.RawRow) ([]standings.Standing, error) {
	out := make([]standings.Standing, 0, len(rows))
	for i, row := range rows {
		rec, err := NormalizeRow(row)
		if err != nil {
			if normErr, ok := err.(*standings.NormalizationError); ok {
				normErr.Row = i + 1
			}
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// parseInt accepts an optional sign, including the Unicode minus used by some tables.
func parseInt(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	s = strings.Replace(s, "−", "-", 1)
	return strconv.Atoi(s)
}
