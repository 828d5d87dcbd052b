package sofifa

import (
	"fmt"
	"sort"
	"strings"
)

// Big5 expands to the five leagues below.
const Big5 = "Big 5 European Leagues Combined"

// League is a competition with its SoFIFA id.
type League struct {
	Name string
	ID   string
}

var leagues = map[string]League{
	"ENG-Premier League": {Name: "ENG-Premier League", ID: "13"},
	"ESP-La Liga":        {Name: "ESP-La Liga", ID: "53"},
	"FRA-Ligue 1":        {Name: "FRA-Ligue 1", ID: "16"},
	"GER-Bundesliga":     {Name: "GER-Bundesliga", ID: "19"},
	"ITA-Serie A":        {Name: "ITA-Serie A", ID: "31"},
}

// LookupLeagues resolves an entity name to the leagues it covers.
func LookupLeagues(name string) ([]League, error) {
	if name == Big5 {
		out := make([]League, 0, len(leagues))
		for _, n := range leagueNames() {
			out = append(out, leagues[n])
		}
		return out, nil
	}
	l, ok := leagues[name]
	if !ok {
		return nil, fmt.Errorf("unknown sofifa league %q (known: %s, %s)", name, Big5, strings.Join(leagueNames(), ", "))
	}
	return []League{l}, nil
}

func leagueNames() []string {
	names := make([]string, 0, len(leagues))
	for name := range leagues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
