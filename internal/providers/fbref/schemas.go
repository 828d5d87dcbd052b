package fbref

import "footstats-collector/internal/flatten"

var leagueContext = []flatten.ContextColumn{
	{Name: "league", Var: flatten.VarEntity},
	{Name: "season", Var: flatten.VarSeason},
}

// TeamStats scrapes team season tables; the target variant is the stat type.
func TeamStats() Endpoint {
	return Endpoint{
		Name:   "team_season_stats",
		Table:  TeamSeason,
		Schema: flatten.Schema{Separator: headerSeparator, Context: leagueContext},
	}
}

// PlayerStats scrapes player season tables; the target variant is the stat type.
func PlayerStats() Endpoint {
	return Endpoint{
		Name:   "player_season_stats",
		Table:  PlayerSeason,
		Schema: flatten.Schema{Separator: headerSeparator, Context: leagueContext},
	}
}

// LeagueTables scrapes the standard tables of a league season; the target
// variant is the table family (team_season, player_season, schedule,
// leagues, seasons, team_match or player_match).
func LeagueTables() Endpoint {
	return Endpoint{
		Name:   "league_tables",
		Stat:   "standard",
		Schema: flatten.Schema{Separator: headerSeparator, Context: leagueContext},
	}
}

// TeamSummary keeps the standard team table's headline columns under
// Portuguese labels.
func TeamSummary() Endpoint {
	return Endpoint{
		Name:  "team_summary",
		Table: TeamSeason,
		Stat:  "standard",
		Schema: flatten.Schema{
			Separator: headerSeparator,
			KeepOnly:  true,
			Fields:    summaryColumns,
			Context:   leagueContext,
		},
	}
}

var summaryColumns = []flatten.FieldRule{
	flatten.Rename("Squad", "Equipe"),
	flatten.Rename("# Pl", "Jogadores Utilizados"),
	flatten.Rename("Age", "Idade Média"),
	flatten.Rename("Poss", "Posse (%)"),
	flatten.Rename("Playing Time_MP", "Partidas"),
	flatten.Rename("Playing Time_Starts", "Titularidades"),
	flatten.Rename("Playing Time_Min", "Minutos Jogados"),
	flatten.Rename("Playing Time_90s", "Jogos (90min)"),
	flatten.Rename("Performance_Gls", "Gols"),
	flatten.Rename("Performance_Ast", "Assistências"),
	flatten.Rename("Performance_G+A", "Gols+Assistências"),
	flatten.Rename("Performance_G-PK", "Gols sem Pênalti"),
	flatten.Rename("Performance_PK", "Pênaltis Convertidos"),
	flatten.Rename("Performance_PKatt", "Pênaltis Tentados"),
	flatten.Rename("Performance_CrdY", "Cartões Amarelos"),
	flatten.Rename("Performance_CrdR", "Cartões Vermelhos"),
	flatten.Rename("Expected_xG", "xG"),
	flatten.Rename("Expected_npxG", "xG (sem pênalti)"),
	flatten.Rename("Expected_xAG", "xAG"),
	flatten.Rename("Expected_npxG+xAG", "npxG+xAG"),
	flatten.Rename("Progression_PrgC", "Conduções Progressivas"),
	flatten.Rename("Progression_PrgP", "Passes Progressivos"),
	flatten.Rename("Per 90 Minutes_Gls", "Gols/90min"),
	flatten.Rename("Per 90 Minutes_Ast", "Assist/90min"),
	flatten.Rename("Per 90 Minutes_G+A", "G+A/90min"),
	flatten.Rename("Per 90 Minutes_G-PK", "Gols SP/90min"),
	flatten.Rename("Per 90 Minutes_G+A-PK", "G+A SP/90min"),
	flatten.Rename("Per 90 Minutes_xG", "xG/90min"),
	flatten.Rename("Per 90 Minutes_xAG", "xAG/90min"),
	flatten.Rename("Per 90 Minutes_xG+xAG", "xG+xAG/90min"),
	flatten.Rename("Per 90 Minutes_npxG", "npxG/90min"),
	flatten.Rename("Per 90 Minutes_npxG+xAG", "npxG+xAG/90min"),
	flatten.Rename("url", "URL"),
}
