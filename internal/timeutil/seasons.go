package timeutil

import (
	"fmt"
	"strconv"
	"time"
)

// SeasonFormat controls how a season start year is rendered.
type SeasonFormat int

const (
	// SeasonYear renders "2022".
	SeasonYear SeasonFormat = iota
	// SeasonSpan renders "2022-2023".
	SeasonSpan
	// SeasonShortSpan renders "2022-23".
	SeasonShortSpan
)

// Season is one entry of a SeasonRange.
type Season struct {
	Year  int
	Label string
}

// SeasonRange enumerates seasons from Start to End inclusive. A zero End
// means the current year.
type SeasonRange struct {
	Start  int
	End    int
	Format SeasonFormat
}

// Seasons lists the seasons of the range relative to now.
func (r SeasonRange) Seasons(now time.Time) []Season {
	end := r.End
	if end == 0 {
		end = now.Year()
	}
	if r.Start == 0 || end < r.Start {
		return nil
	}
	out := make([]Season, 0, end-r.Start+1)
	for year := r.Start; year <= end; year++ {
		out = append(out, Season{Year: year, Label: FormatSeason(year, r.Format)})
	}
	return out
}

// String describes the range for listings.
func (r SeasonRange) String() string {
	end := "now"
	if r.End != 0 {
		end = FormatSeason(r.End, r.Format)
	}
	return fmt.Sprintf("%s..%s", FormatSeason(r.Start, r.Format), end)
}

// FormatSeason renders a start year in the given format.
func FormatSeason(year int, format SeasonFormat) string {
	switch format {
	case SeasonSpan:
		return fmt.Sprintf("%d-%d", year, year+1)
	case SeasonShortSpan:
		return fmt.Sprintf("%d-%02d", year, (year+1)%100)
	default:
		return strconv.Itoa(year)
	}
}
