package fbref

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"footstats-collector/internal/flatten"
)

// ErrTableNotFound is returned when no table on the page matches.
var ErrTableNotFound = errors.New("fbref: table not found")

// linkStats are the cells whose anchor becomes the row's url column.
var linkStats = []string{"squad", "team", "player", "match_report", "league_name"}

// ParseTable extracts the first table whose id satisfies match. FBref ships
// most secondary tables inside HTML comments, so those are searched too.
// Two-row headers are joined as "<group><sep><column>".
func ParseTable(body []byte, match func(id string) bool, sep, baseURL string) ([]flatten.Record, error) {
	tables, err := parseTables(body, match, sep, baseURL, false)
	if err != nil {
		return nil, err
	}
	return tables[0].rows, nil
}

// parsedTable is one extracted table with its caption.
type parsedTable struct {
	id      string
	caption string
	rows    []flatten.Record
}

// parseTables is ParseTable returning every matching table when all is set.
func parseTables(body []byte, match func(id string) bool, sep, baseURL string, all bool) ([]parsedTable, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fbref: parse page: %w", err)
	}
	found := findTables(doc.Selection, match, all, make(map[string]bool))
	if len(found) == 0 {
		return nil, ErrTableNotFound
	}
	out := make([]parsedTable, 0, len(found))
	for _, table := range found {
		id := table.AttrOr("id", "")
		columns := headerColumns(table, sep)
		if len(columns) == 0 {
			return nil, fmt.Errorf("fbref: table %s has no header", id)
		}
		out = append(out, parsedTable{
			id:      id,
			caption: cellText(table.Find("caption").First()),
			rows:    tableRows(table, columns, baseURL),
		})
	}
	return out, nil
}

// findTables returns matching tables in document order, visible ones before
// commented-out ones. Without all it stops at the first hit.
func findTables(root *goquery.Selection, match func(id string) bool, all bool, seen map[string]bool) []*goquery.Selection {
	var found []*goquery.Selection
	root.Find("table[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		id := s.AttrOr("id", "")
		if !match(id) || seen[id] {
			return true
		}
		seen[id] = true
		found = append(found, s)
		return all
	})
	if len(found) > 0 && !all {
		return found
	}

	var comments []string
	root.Find("*").Contents().Each(func(_ int, s *goquery.Selection) {
		if n := s.Get(0); n != nil && n.Type == html.CommentNode && strings.Contains(n.Data, "<table") {
			comments = append(comments, n.Data)
		}
	})
	for _, c := range comments {
		inner, err := goquery.NewDocumentFromReader(strings.NewReader(c))
		if err != nil {
			continue
		}
		found = append(found, findTables(inner.Selection, match, all, seen)...)
		if len(found) > 0 && !all {
			return found[:1]
		}
	}
	return found
}

func headerColumns(table *goquery.Selection, sep string) []string {
	rows := table.Find("thead tr")
	if rows.Length() == 0 {
		return nil
	}

	var groups []string
	if rows.Length() > 1 {
		rows.First().Children().Each(func(_ int, th *goquery.Selection) {
			span, err := strconv.Atoi(th.AttrOr("colspan", "1"))
			if err != nil || span < 1 {
				span = 1
			}
			label := cellText(th)
			for i := 0; i < span; i++ {
				groups = append(groups, label)
			}
		})
	}

	seen := make(map[string]int)
	var columns []string
	rows.Last().Children().Each(func(i int, th *goquery.Selection) {
		name := cellText(th)
		if name == "" {
			name = th.AttrOr("data-stat", "")
		}
		if i < len(groups) && groups[i] != "" {
			name = groups[i] + sep + name
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = name + sep + strconv.Itoa(n)
		}
		columns = append(columns, name)
	})
	return columns
}

func tableRows(table *goquery.Selection, columns []string, baseURL string) []flatten.Record {
	var records []flatten.Record
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") || tr.HasClass("spacer") || tr.HasClass("over_header") {
			return
		}
		var rec flatten.Record
		empty := true
		tr.Children().Each(func(i int, cell *goquery.Selection) {
			if i >= len(columns) {
				return
			}
			value := cellText(cell)
			if value != "" {
				empty = false
			}
			rec.Set(columns[i], value)
		})
		if empty {
			return
		}
		if href := rowLink(tr); href != "" {
			rec.Set("url", absoluteURL(baseURL, href))
		}
		records = append(records, rec)
	})
	return records
}

func rowLink(tr *goquery.Selection) string {
	for _, stat := range linkStats {
		if href, ok := tr.Find(`[data-stat="` + stat + `"] a`).First().Attr("href"); ok {
			return href
		}
	}
	return ""
}

func absoluteURL(baseURL, href string) string {
	if strings.HasPrefix(href, "/") {
		return strings.TrimSuffix(baseURL, "/") + href
	}
	return href
}

func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
