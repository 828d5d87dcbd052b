package sofifa

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"footstats-collector/internal/fetch"
	"footstats-collector/internal/logging"
)

// Version is one weekly database update.
type Version struct {
	ID      string
	Edition int
	Update  time.Time
}

// editionOf reads the game edition from a version id: "240050" is FC 24.
func editionOf(id string) (int, bool) {
	if len(id) < 3 {
		return 0, false
	}
	n, err := strconv.Atoi(id[:2])
	if err != nil {
		return 0, false
	}
	return 2000 + n, true
}

// versionParam pulls the r= query value out of an option value such as
// "/?r=240050&set=true".
func versionParam(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("r")
}

// parseOptions returns the version ids and labels of a select element.
func parseOptions(body []byte, name string) ([][2]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sofifa: parse page: %w", err)
	}
	var out [][2]string
	doc.Find(`select[name="` + name + `"] option`).Each(func(_ int, opt *goquery.Selection) {
		id := versionParam(opt.AttrOr("value", ""))
		if id == "" {
			return
		}
		out = append(out, [2]string{id, strings.TrimSpace(opt.Text())})
	})
	return out, nil
}

// Versions lists the latest updates across every edition, oldest first,
// capped at the configured limit. The list is read once per client.
func (c *Client) Versions(ctx context.Context) ([]Version, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions != nil {
		return c.versions, nil
	}

	body, err := c.fetch.Get(ctx, fetch.Request{Path: "/"})
	if err != nil {
		return nil, err
	}
	editions, err := parseOptions(body, "version")
	if err != nil {
		return nil, err
	}
	if len(editions) == 0 {
		return nil, errors.New("sofifa: no editions on the home page")
	}

	seen := make(map[string]bool)
	var all []Version
	for _, ed := range editions {
		if err := c.sleep(ctx, c.pageDelay); err != nil {
			return nil, err
		}
		body, err := c.fetch.Get(ctx, fetch.Request{
			Path:  "/",
			Query: url.Values{"r": {ed[0]}, "set": {"true"}},
		})
		if err != nil {
			return nil, err
		}
		updates, err := parseOptions(body, "roster")
		if err != nil {
			return nil, err
		}
		for _, u := range updates {
			if seen[u[0]] {
				continue
			}
			edition, ok := editionOf(u[0])
			if !ok {
				continue
			}
			// Updates without a readable date are dropped.
			when, err := time.Parse(updateDate, u[1])
			if err != nil {
				continue
			}
			seen[u[0]] = true
			all = append(all, Version{ID: u[0], Edition: edition, Update: when})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Update.Equal(all[j].Update) {
			return all[i].ID < all[j].ID
		}
		return all[i].Update.Before(all[j].Update)
	})
	if len(all) > c.versionLimit {
		all = all[len(all)-c.versionLimit:]
	}
	logging.Info(c.logger, "sofifa versions",
		slog.Int("editions", len(editions)),
		slog.Int(logging.FieldCount, len(all)),
	)
	c.versions = all
	return all, nil
}

func versionsOf(all []Version, edition int) []Version {
	var out []Version
	for _, v := range all {
		if v.Edition == edition {
			out = append(out, v)
		}
	}
	return out
}
