package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
)

// ExtractRows locates the first table in page and returns one RawRow per body row,
// top of the table first. Rows made only of header cells are skipped; any other
// row must carry exactly standings.ColumnCount data cells.
func ExtractRows(page string) ([]standings.RawRow, error) {
	root, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, &standings.ExtractionError{Reason: "parse html: " + err.Error()}
	}

	table := goquery.NewDocumentFromNode(root).Find("table").First()
	if table.Length() == 0 {
		return nil, &standings.ExtractionError{Reason: "no table found"}
	}

	var (
		rows    []standings.RawRow
		bodyRow int
		rowErr  error
	)
	table.ChildrenFiltered("tbody").ChildrenFiltered("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		bodyRow++
		cells := tr.ChildrenFiltered("td")
		if cells.Length() == 0 {
			return true
		}
		if cells.Length() != standings.ColumnCount {
			rowErr = &standings.ExtractionError{Row: bodyRow, Cells: cells.Length()}
			return false
		}
		var row standings.RawRow
		cells.Each(func(i int, td *goquery.Selection) {
			row[i] = cellText(td.Get(0), i == standings.ColForm)
		})
		rows = append(rows, row)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	if len(rows) == 0 {
		return nil, &standings.ExtractionError{Reason: "table has no data rows"}
	}
	return rows, nil
}

// blockElements break words apart even when the source has no whitespace
// between them.
var blockElements = map[string]bool{
	"br": true, "div": true, "li": true, "ol": true, "p": true,
	"table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// cellText returns the visible text of a cell with whitespace collapsed. Text
// split only by inline markup is rejoined as written, so Wolver<b>hampton</b>
// stays one word. With tokenize set every text node is its own token, which
// keeps <span>W</span><span>Win</span> apart in form cells.
func cellText(n *html.Node, tokenize bool) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			if tokenize {
				b.WriteByte(' ')
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte(' ')
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
