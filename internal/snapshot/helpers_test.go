package snapshot

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/league-table-service/internal/providers/fixture"
)

func fixturePage() string {
	return fixture.Render(fixture.DefaultTeams)
}

func row(pos, name, played, form string) []string {
	return []string{pos, name, played, "0", "0", "0", "0", "0", "0", "0", form}
}

func tablePage(rows ...[]string) string {
	var b strings.Builder
	b.WriteString("<table><tbody>")
	for _, r := range rows {
		b.WriteString("<tr>")
		for _, cell := range r {
			fmt.Fprintf(&b, "<td>%s</td>", cell)
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
