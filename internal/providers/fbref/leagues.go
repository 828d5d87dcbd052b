package fbref

import (
	"fmt"
	"sort"
	"strings"
)

// Big5 is the combined top-five-leagues pseudo league.
const Big5 = "Big 5 European Leagues Combined"

// League locates a competition on FBref.
type League struct {
	Name string
	// ID is the numeric competition id, or "Big5".
	ID   string
	Slug string
}

var leagues = map[string]League{
	"ENG-Premier League": {Name: "ENG-Premier League", ID: "9", Slug: "Premier-League"},
	"ESP-La Liga":        {Name: "ESP-La Liga", ID: "12", Slug: "La-Liga"},
	"FRA-Ligue 1":        {Name: "FRA-Ligue 1", ID: "13", Slug: "Ligue-1"},
	"GER-Bundesliga":     {Name: "GER-Bundesliga", ID: "20", Slug: "Bundesliga"},
	"ITA-Serie A":        {Name: "ITA-Serie A", ID: "11", Slug: "Serie-A"},
	Big5:                 {Name: Big5, ID: "Big5", Slug: "Big-5-European-Leagues"},
}

// LookupLeague resolves a league name such as "ESP-La Liga".
func LookupLeague(name string) (League, error) {
	l, ok := leagues[name]
	if !ok {
		return League{}, fmt.Errorf("unknown fbref league %q (known: %s)", name, strings.Join(LeagueNames(), ", "))
	}
	return l, nil
}

// LeagueNames lists the registered leagues in name order.
func LeagueNames() []string {
	names := make([]string, 0, len(leagues))
	for name := range leagues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l League) combined() bool {
	return l.ID == "Big5"
}
