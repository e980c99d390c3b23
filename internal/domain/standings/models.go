package standings

// Column positions within a standings table row.
const (
	ColPosition = iota
	ColName
	ColPlayed
	ColWon
	ColDrawn
	ColLost
	ColGoalsFor
	ColGoalsAgainst
	ColGoalDifference
	ColPoints
	ColForm

	// ColumnCount is the number of cells every data row must carry.
	ColumnCount
)

// ColumnNames labels each column for error reporting.
var ColumnNames = [ColumnCount]string{
	"position",
	"name",
	"played",
	"won",
	"drawn",
	"lost",
	"goalsFor",
	"goalsAgainst",
	"goalDifference",
	"points",
	"form",
}

// RawRow is the untyped cell text of one table row in column order.
type RawRow [ColumnCount]string

// Result is a single match outcome decoded from a form field.
type Result string

const (
	ResultWin  Result = "Win"
	ResultLoss Result = "Loss"
	ResultDraw Result = "Draw"
)

// Standing is one team's line in the league table.
type Standing struct {
	Position       int    `json:"position" yaml:"position"`
	Name           string `json:"name" yaml:"name" validate:"required"`
	Played         int    `json:"played" yaml:"played"`
	Won            int    `json:"won" yaml:"won"`
	Drawn          int    `json:"drawn" yaml:"drawn"`
	Lost           int    `json:"lost" yaml:"lost"`
	GoalsFor       int    `json:"goalsFor" yaml:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst" yaml:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference" yaml:"goalDifference"`
	Points         int    `json:"points" yaml:"points"`
}

// FormHistory lists a team's recent results, most recent first.
type FormHistory struct {
	Name    string   `json:"name" yaml:"name"`
	Results []Result `json:"results" yaml:"results"`
}

// TeamSummary pairs a team's standing with its form.
type TeamSummary struct {
	Standing Standing    `json:"standing" yaml:"standing"`
	Form     FormHistory `json:"form" yaml:"form"`
}

// StandingsResponse is the payload returned by /standings.
type StandingsResponse struct {
	FetchedAt string     `json:"fetchedAt" yaml:"fetchedAt"`
	Source    string     `json:"source,omitempty" yaml:"source,omitempty"`
	Standings []Standing `json:"standings" yaml:"standings"`
}

// TeamsResponse is the payload returned by /teams.
type TeamsResponse struct {
	Teams []string `json:"teams" yaml:"teams"`
}
