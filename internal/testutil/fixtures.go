package testutil

import "github.com/preston-bernstein/league-table-service/internal/domain/standings"

// SampleFetchedAt is the fetch time stamped on SampleSnapshot.
var SampleFetchedAt = MustParseRFC3339(SampleFetchedAtRFC3339)

// SampleSource is the source URL stamped on SampleSnapshot.
const SampleSource = "https://example.test/premier-league/table"

// SampleStandings returns a three-team table in rank order.
func SampleStandings() []standings.Standing {
	return []standings.Standing{
		{Position: 1, Name: "Arsenal", Played: 6, Won: 5, Drawn: 1, GoalsFor: 14, GoalsAgainst: 3, GoalDifference: 11, Points: 16},
		{Position: 2, Name: "Aston Villa", Played: 6, Won: 3, Drawn: 1, Lost: 2, GoalsFor: 10, GoalsAgainst: 8, GoalDifference: 2, Points: 10},
		{Position: 3, Name: "Burnley", Played: 4, Lost: 4, GoalsFor: 1, GoalsAgainst: 9, GoalDifference: -8},
	}
}

// SampleForms returns form histories matching SampleStandings. Burnley has a
// short history.
func SampleForms() []standings.FormHistory {
	w, l, d := standings.ResultWin, standings.ResultLoss, standings.ResultDraw
	return []standings.FormHistory{
		{Name: "Arsenal", Results: []standings.Result{w, w, w, d, w, w}},
		{Name: "Aston Villa", Results: []standings.Result{w, l, w, d, w, l}},
		{Name: "Burnley", Results: []standings.Result{l, l, l, l}},
	}
}

// SampleSnapshot builds a snapshot from SampleStandings and SampleForms.
func SampleSnapshot() *standings.Snapshot {
	snap, err := standings.NewSnapshot(SampleFetchedAt, SampleSource, SampleStandings(), SampleForms())
	if err != nil {
		panic(err)
	}
	return snap
}
