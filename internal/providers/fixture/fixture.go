package fixture

import (
	"cmp"
	"context"
	"fmt"
	"html"
	"slices"
	"strings"
)

// Team describes one fixture club. Form lists results oldest first using
// "Win", "Loss" or "Draw".
type Team struct {
	Name         string
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Form         []string
}

// DefaultTeams is the league rendered by New. Sheffield United has played
// fewer than six matches so its form is short.
var DefaultTeams = []Team{
	{Name: "Arsenal", Won: 5, Drawn: 1, Lost: 0, GoalsFor: 14, GoalsAgainst: 3, Form: []string{"Win", "Win", "Draw", "Win", "Win", "Win"}},
	{Name: "Manchester City", Won: 4, Drawn: 2, Lost: 0, GoalsFor: 13, GoalsAgainst: 5, Form: []string{"Draw", "Win", "Win", "Draw", "Win", "Win"}},
	{Name: "Liverpool", Won: 4, Drawn: 1, Lost: 1, GoalsFor: 12, GoalsAgainst: 6, Form: []string{"Win", "Loss", "Win", "Win", "Draw", "Win"}},
	{Name: "Aston Villa", Won: 3, Drawn: 1, Lost: 2, GoalsFor: 10, GoalsAgainst: 8, Form: []string{"Loss", "Win", "Draw", "Win", "Loss", "Win"}},
	{Name: "Brighton & Hove Albion", Won: 2, Drawn: 2, Lost: 2, GoalsFor: 9, GoalsAgainst: 9, Form: []string{"Draw", "Loss", "Win", "Draw", "Win", "Loss"}},
	{Name: "Wolverhampton Wanderers", Won: 1, Drawn: 2, Lost: 3, GoalsFor: 6, GoalsAgainst: 11, Form: []string{"Loss", "Draw", "Loss", "Win", "Draw", "Loss"}},
	{Name: "Sheffield United", Won: 0, Drawn: 1, Lost: 3, GoalsFor: 2, GoalsAgainst: 10, Form: []string{"Loss", "Draw", "Loss", "Loss"}},
	{Name: "Burnley", Won: 0, Drawn: 0, Lost: 6, GoalsFor: 3, GoalsAgainst: 17, Form: []string{"Loss", "Loss", "Loss", "Loss", "Loss", "Loss"}},
}

// Provider serves a static standings page for local runs and tests.
type Provider struct {
	page string
}

// New renders DefaultTeams into a provider.
func New() *Provider {
	return NewWithPage(Render(DefaultTeams))
}

// NewWithPage serves page verbatim.
func NewWithPage(page string) *Provider {
	return &Provider{page: page}
}

// FetchPage returns the fixture page regardless of url.
func (p *Provider) FetchPage(ctx context.Context, url string) (string, error) {
	_ = url
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.page, nil
}

// Render builds a standings table in the upstream markup shape, ranked by
// points, goal difference, goals scored, then name.
func Render(teams []Team) string {
	ranked := slices.Clone(teams)
	slices.SortStableFunc(ranked, func(a, b Team) int {
		return cmp.Or(
			cmp.Compare(points(b), points(a)),
			cmp.Compare(b.GoalsFor-b.GoalsAgainst, a.GoalsFor-a.GoalsAgainst),
			cmp.Compare(b.GoalsFor, a.GoalsFor),
			strings.Compare(a.Name, b.Name),
		)
	})

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>Premier League Table</title></head><body>\n")
	b.WriteString("<table><caption>Premier League</caption><thead><tr>")
	for _, h := range []string{"Position", "Team", "Played", "Won", "Drawn", "Lost", "Goals For", "Goals Against", "Goal Difference", "Points", "Form"} {
		fmt.Fprintf(&b, "<th>%s</th>", h)
	}
	b.WriteString("</tr></thead>\n<tbody>\n")
	for i, t := range ranked {
		b.WriteString("<tr>")
		fmt.Fprintf(&b, "<td>%d</td>", i+1)
		fmt.Fprintf(&b, `<td><a href="/sport/football/teams/%s"><span>%s</span></a></td>`, slug(t.Name), html.EscapeString(t.Name))
		for _, n := range []int{t.Won + t.Drawn + t.Lost, t.Won, t.Drawn, t.Lost, t.GoalsFor, t.GoalsAgainst} {
			fmt.Fprintf(&b, "<td>%d</td>", n)
		}
		fmt.Fprintf(&b, "<td>%s</td>", signed(t.GoalsFor-t.GoalsAgainst))
		fmt.Fprintf(&b, "<td>%d</td>", points(t))
		b.WriteString("<td><ul>")
		for _, r := range t.Form {
			if r == "" {
				continue
			}
			fmt.Fprintf(&b, "<li><span>%s</span><span>%s Result</span></li>", r[:1], r)
		}
		b.WriteString("</ul></td></tr>\n")
	}
	b.WriteString("</tbody></table>\n</body></html>\n")
	return b.String()
}

func points(t Team) int { return 3*t.Won + t.Drawn }

func signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprint(n)
}

func slug(name string) string {
	fields := strings.Fields(strings.ToLower(strings.ReplaceAll(name, "&", "and")))
	return strings.Join(fields, "-")
}
