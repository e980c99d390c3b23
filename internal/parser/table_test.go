package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
)

func tableHTML(rows ...[]string) string {
	var b strings.Builder
	b.WriteString("<html><body><table><thead><tr><th>Pos</th><th>Team</th></tr></thead><tbody>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, "<td>%s</td>", cell)
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table></body></html>")
	return b.String()
}

func row(pos, name, form string) []string {
	return []string{pos, name, "3", "2", "1", "0", "7", "2", "+5", "7", form}
}

func TestExtractRowsReturnsRowsInDocumentOrder(t *testing.T) {
	page := tableHTML(
		row("1", "Arsenal", "Win Win Draw"),
		row("2", "Chelsea", "Win Draw Win"),
		row("3", "Fulham", "Draw Win Win"),
	)

	rows, err := ExtractRows(page)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "1", rows[0][standings.ColPosition])
	assert.Equal(t, "Arsenal", rows[0][standings.ColName])
	assert.Equal(t, "Chelsea", rows[1][standings.ColName])
	assert.Equal(t, "Fulham", rows[2][standings.ColName])
	assert.Equal(t, "+5", rows[2][standings.ColGoalDifference])
	assert.Equal(t, "Draw Win Win", rows[2][standings.ColForm])
}

func TestExtractRowsSeparatesNestedText(t *testing.T) {
	form := `<ul><li><span>W</span><span>Win result</span></li><li><span>L</span><span>Loss result</span></li></ul>`
	page := tableHTML(row("1", `<a href="/arsenal"><span>Arsenal</span></a>`, form))

	rows, err := ExtractRows(page)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Arsenal", rows[0][standings.ColName])
	assert.Equal(t, "W Win result L Loss result", rows[0][standings.ColForm])
}

func TestExtractRowsUsesOnlyFirstTable(t *testing.T) {
	first := tableHTML(row("1", "Arsenal", ""))
	second := tableHTML(row("1", "Leeds", ""), row("2", "Burnley", ""))

	rows, err := ExtractRows(first + second)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Arsenal", rows[0][standings.ColName])
}

func TestExtractRowsHandlesMultipleBodiesAndImplicitBody(t *testing.T) {
	page := `<table>
		<tbody><tr>` + cells(row("1", "Arsenal", "Win")) + `</tr></tbody>
		<tbody><tr>` + cells(row("2", "Chelsea", "Loss")) + `</tr></tbody>
	</table>`
	rows, err := ExtractRows(page)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Chelsea", rows[1][standings.ColName])

	implicit := `<table><tr>` + cells(row("1", "Everton", "Draw")) + `</tr></table>`
	rows, err = ExtractRows(implicit)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Everton", rows[0][standings.ColName])
}

func TestExtractRowsSkipsHeaderOnlyRows(t *testing.T) {
	page := `<table><tbody><tr><th>Pos</th><th>Team</th></tr><tr>` + cells(row("1", "Arsenal", "")) + `</tr></tbody></table>`

	rows, err := ExtractRows(page)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestExtractRowsIgnoresNestedTableCells(t *testing.T) {
	name := `Arsenal<table><tr><td>x</td><td>y</td></tr></table>`
	rows, err := ExtractRows(tableHTML(row("1", name, "")))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Arsenal x y", rows[0][standings.ColName])
}

func TestExtractRowsRejectsWrongCellCount(t *testing.T) {
	short := []string{"2", "Chelsea", "3"}
	page := tableHTML(row("1", "Arsenal", ""), short)

	_, err := ExtractRows(page)
	var extractErr *standings.ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, 2, extractErr.Row)
	assert.Equal(t, 3, extractErr.Cells)

	long := append(row("1", "Arsenal", ""), "extra")
	_, err = ExtractRows(tableHTML(long))
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, 12, extractErr.Cells)
}

func TestExtractRowsWithoutTable(t *testing.T) {
	_, err := ExtractRows("<html><body><p>maintenance</p></body></html>")
	var extractErr *standings.ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Contains(t, extractErr.Error(), "no table found")
}

func TestExtractRowsWithEmptyTable(t *testing.T) {
	_, err := ExtractRows("<table><thead><tr><th>Pos</th></tr></thead></table>")
	var extractErr *standings.ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Contains(t, extractErr.Error(), "no data rows")
}

func TestExtractRowsIgnoresScriptText(t *testing.T) {
	name := `Arsenal<script>track("x")</script>`
	rows, err := ExtractRows(tableHTML(row("1", name, "")))
	require.NoError(t, err)
	assert.Equal(t, "Arsenal", rows[0][standings.ColName])
}

func TestExtractRowsCountMatchesInput(t *testing.T) {
	for n := 1; n <= 20; n++ {
		var rows [][]string
		for i := 1; i <= n; i++ {
			rows = append(rows, row(fmt.Sprint(i), fmt.Sprintf("Team %d", i), "Win"))
		}
		got, err := ExtractRows(tableHTML(rows...))
		require.NoError(t, err)
		require.Len(t, got, n)
		for i, r := range got {
			assert.Equal(t, fmt.Sprintf("Team %d", i+1), r[standings.ColName])
		}
	}
}

func cells(values []string) string {
	var b strings.Builder
	for _, v := range values {
		fmt.Fprintf(&b, "<td>%s</td>", v)
	}
	return b.String()
}

func TestExtractRowsKeepsWordsSplitByInlineMarkup(t *testing.T) {
	name := `<a href="/wolves">Wolver<b>hampton</b>  Wanderers</a>`
	rows, err := ExtractRows(tableHTML(row("7", name, "<span>W</span><span>Win</span>")))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Wolverhampton Wanderers", rows[0][standings.ColName])
	assert.Equal(t, "W Win", rows[0][standings.ColForm])

	rec, err := NormalizeRow(rows[0])
	require.NoError(t, err)
	assert.Equal(t, "Wolverhampton Wanderers", rec.Name)
}

func TestExtractRowsSeparatesBlockMarkupInNames(t *testing.T) {
	name := `<div>Brighton</div><div>Hove Albion</div>`
	rows, err := ExtractRows(tableHTML(row("1", name, "")))
	require.NoError(t, err)
	assert.Equal(t, "Brighton Hove Albion", rows[0][standings.ColName])
}
