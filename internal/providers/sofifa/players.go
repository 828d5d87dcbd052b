package sofifa

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"footstats-collector/internal/flatten"
)

// dataColumns maps the listing's data-col codes to column names.
var dataColumns = [][2]string{
	{"ae", "age"},
	{"oa", "overall"},
	{"pt", "potential"},
	{"vl", "value"},
	{"wg", "wage"},
	{"tt", "total_stats"},
}

// parsePlayers reads one page of the player listing.
func parsePlayers(body []byte) ([]flatten.Record, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sofifa: parse players: %w", err)
	}
	var out []flatten.Record
	doc.Find("table tbody tr").Each(func(_ int, tr *goquery.Selection) {
		link := tr.Find(`a[href^="/player/"]`).First()
		if link.Length() == 0 {
			return
		}
		var rec flatten.Record
		rec.Set("player_id", refID(link.AttrOr("href", ""), "player"))
		name := strings.TrimSpace(link.AttrOr("data-tippy-content", ""))
		if name == "" {
			name = strings.TrimSpace(link.Text())
		}
		rec.Set("player", name)
		rec.Set(SplitColumn, strings.TrimSpace(tr.Find("img.flag").First().AttrOr("title", "")))

		var positions []string
		tr.Find("span.pos").Each(func(_ int, pos *goquery.Selection) {
			positions = append(positions, strings.TrimSpace(pos.Text()))
		})
		rec.Set("positions", strings.Join(positions, ","))

		team := tr.Find(`a[href^="/team/"]`).First()
		rec.Set("team_id", refID(team.AttrOr("href", ""), "team"))
		rec.Set("team", strings.TrimSpace(team.Text()))

		for _, dc := range dataColumns {
			cell := tr.Find(`td[data-col="` + dc[0] + `"]`).First()
			rec.Set(dc[1], strings.Join(strings.Fields(cell.Text()), " "))
		}
		out = append(out, rec)
	})
	return out, nil
}

// refID returns the id following kind in links like /player/231747/kylian-mbappe/240050/.
func refID(href, kind string) string {
	segs := strings.Split(strings.Trim(href, "/"), "/")
	if len(segs) < 2 || segs[0] != kind {
		return ""
	}
	return segs[1]
}
