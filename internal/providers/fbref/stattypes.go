package fbref

import "fmt"

// StatType is one of FBref's season stat tables.
type StatType struct {
	Name string
	// Page is the URL segment of the stats page.
	Page string
	// Stem is the stat part of the table id.
	Stem string
}

var statTypes = map[string]StatType{
	"standard":           {Name: "standard", Page: "stats", Stem: "standard"},
	"keeper":             {Name: "keeper", Page: "keepers", Stem: "keeper"},
	"keeper_adv":         {Name: "keeper_adv", Page: "keepersadv", Stem: "keeper_adv"},
	"shooting":           {Name: "shooting", Page: "shooting", Stem: "shooting"},
	"passing":            {Name: "passing", Page: "passing", Stem: "passing"},
	"passing_types":      {Name: "passing_types", Page: "passing_types", Stem: "passing_types"},
	"goal_shot_creation": {Name: "goal_shot_creation", Page: "gca", Stem: "gca"},
	"defense":            {Name: "defense", Page: "defense", Stem: "defense"},
	"possession":         {Name: "possession", Page: "possession", Stem: "possession"},
	"playing_time":       {Name: "playing_time", Page: "playingtime", Stem: "playing_time"},
	"misc":               {Name: "misc", Page: "misc", Stem: "misc"},
}

// TeamStatTypes is every team season stat type in page order.
var TeamStatTypes = []string{
	"standard", "keeper", "keeper_adv", "shooting", "passing", "passing_types",
	"goal_shot_creation", "defense", "possession", "playing_time", "misc",
}

// LookupStatType resolves a stat type name.
func LookupStatType(name string) (StatType, error) {
	st, ok := statTypes[name]
	if !ok {
		return StatType{}, fmt.Errorf("unknown fbref stat type %q", name)
	}
	return st, nil
}
