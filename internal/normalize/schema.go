package normalize

// Kind selects the coercion applied to a field's raw value.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
)

// FieldSpec maps one target column to the source column names that may carry
// its value. Aliases are tried in order; the first present, non-null value
// wins. Extra fields land in the additional-stats document instead of a
// dedicated column.
type FieldSpec struct {
	Column  string
	Aliases []string
	Kind    Kind
	Extra   bool
}

// Stat categories published per team and per player. Goalkeeping has a
// different table shape upstream and is excluded from default player loads.
const (
	StatStandard     = "standard"
	StatShooting     = "shooting"
	StatPassing      = "passing"
	StatPassingTypes = "passing_types"
	StatDefense      = "defense"
	StatPossession   = "possession"
	StatMisc         = "misc"
	StatGoalkeeping  = "goalkeeping"
)

func TeamStatTypes() []string {
	return []string{
		StatStandard,
		StatShooting,
		StatPassing,
		StatPassingTypes,
		StatDefense,
		StatPossession,
		StatMisc,
	}
}

func PlayerStatTypes() []string {
	return []string{
		StatStandard,
		StatShooting,
		StatPassing,
		StatDefense,
		StatPossession,
		StatGoalkeeping,
	}
}

func DefaultPlayerStatTypes() []string {
	return []string{
		StatStandard,
		StatShooting,
		StatPassing,
		StatDefense,
		StatPossession,
	}
}

// TeamFields returns the extraction schema for one team stat category.
// Unknown categories, such as passing_types, yield no named fields; every
// column then flows into the additional-stats overflow.
func TeamFields(statType string) []FieldSpec {
	switch statType {
	case StatStandard:
		return []FieldSpec{
			{Column: "matches_played", Aliases: []string{"# Pl", "MP", "Matches"}},
			{Column: "wins", Aliases: []string{"W", "Wins"}},
			{Column: "draws", Aliases: []string{"D", "Draws"}},
			{Column: "losses", Aliases: []string{"L", "Losses"}},
			{Column: "goals_for", Aliases: []string{"GF", "Goals For"}},
			{Column: "goals_against", Aliases: []string{"GA", "Goals Against"}},
			{Column: "yellow_cards", Aliases: []string{"CrdY", "Yellow Cards"}},
			{Column: "red_cards", Aliases: []string{"CrdR", "Red Cards"}},
		}
	case StatShooting:
		return []FieldSpec{
			{Column: "shots", Aliases: []string{"Sh", "Shots"}},
			{Column: "shots_on_target", Aliases: []string{"SoT", "Shots on Target"}},
			{Column: "shots_on_target_pct", Aliases: []string{"SoT%"}, Kind: KindFloat},
			{Column: "goals_per_shot", Aliases: []string{"G/Sh"}, Kind: KindFloat, Extra: true},
			{Column: "goals_per_shot_on_target", Aliases: []string{"G/SoT"}, Kind: KindFloat, Extra: true},
		}
	case StatPassing:
		return []FieldSpec{
			{Column: "passes_completed", Aliases: []string{"Cmp", "Passes Completed"}},
			{Column: "passes_attempted", Aliases: []string{"Att", "Passes Attempted"}},
			{Column: "pass_completion_pct", Aliases: []string{"Cmp%", "Pass Completion %"}, Kind: KindFloat},
			{Column: "progressive_passes", Aliases: []string{"PrgP"}, Extra: true},
			{Column: "key_passes", Aliases: []string{"KP"}, Extra: true},
		}
	case StatDefense:
		return []FieldSpec{
			{Column: "tackles", Aliases: []string{"Tkl", "Tackles"}},
			{Column: "tackles_won", Aliases: []string{"TklW"}},
			{Column: "interceptions", Aliases: []string{"Int", "Interceptions"}},
			{Column: "blocks", Aliases: []string{"Blocks"}},
			{Column: "clearances", Aliases: []string{"Clr", "Clearances"}},
		}
	case StatPossession:
		return []FieldSpec{
			{Column: "possession_pct", Aliases: []string{"Poss", "Possession"}, Kind: KindFloat},
			{Column: "touches", Aliases: []string{"Touches"}, Extra: true},
			{Column: "progressive_carries", Aliases: []string{"PrgC"}, Extra: true},
		}
	case StatMisc:
		return []FieldSpec{
			{Column: "fouls_committed", Aliases: []string{"Fls", "Fouls"}},
			{Column: "fouls_drawn", Aliases: []string{"Fld", "Fouls Drawn"}},
			{Column: "offsides", Aliases: []string{"Off", "Offsides"}, Extra: true},
			{Column: "penalty_kicks", Aliases: []string{"PKwon"}, Extra: true},
		}
	default:
		return nil
	}
}

// PlayerFields returns the extraction schema for one player stat category.
// Matches, starts, minutes, and fouls are reported in every category and are
// always extracted.
func PlayerFields(statType string) []FieldSpec {
	specs := []FieldSpec{
		{Column: "matches_played", Aliases: []string{"games", "MP", "Matches"}},
		{Column: "starts", Aliases: []string{"games_starts", "Starts"}},
		{Column: "minutes_played", Aliases: []string{"minutes", "Min", "Minutes"}},
	}

	switch statType {
	case StatStandard:
		specs = append(specs,
			FieldSpec{Column: "goals", Aliases: []string{"goals", "Gls", "Goals"}},
			FieldSpec{Column: "assists", Aliases: []string{"assists", "Ast", "Assists"}},
			FieldSpec{Column: "penalty_goals", Aliases: []string{"pens_made", "PK"}},
			FieldSpec{Column: "penalty_attempts", Aliases: []string{"pens_att", "PKatt"}},
			FieldSpec{Column: "yellow_cards", Aliases: []string{"cards_yellow", "CrdY"}},
			FieldSpec{Column: "red_cards", Aliases: []string{"cards_red", "CrdR"}},
			FieldSpec{Column: "expected_goals", Aliases: []string{"xg", "xG"}, Kind: KindFloat, Extra: true},
			FieldSpec{Column: "expected_assists", Aliases: []string{"xg_assist", "xAG"}, Kind: KindFloat, Extra: true},
		)
	case StatShooting:
		specs = append(specs,
			FieldSpec{Column: "shots", Aliases: []string{"shots", "Sh"}},
			FieldSpec{Column: "shots_on_target", Aliases: []string{"shots_on_target", "SoT"}},
			FieldSpec{Column: "shots_on_target_pct", Aliases: []string{"shots_on_target_pct", "SoT%"}, Kind: KindFloat},
			FieldSpec{Column: "goals_per_shot", Aliases: []string{"goals_per_shot", "G/Sh"}, Kind: KindFloat},
			FieldSpec{Column: "shots_per_90", Aliases: []string{"shots_per90"}, Kind: KindFloat, Extra: true},
		)
	case StatPassing:
		specs = append(specs,
			FieldSpec{Column: "passes_completed", Aliases: []string{"passes_completed", "Cmp"}},
			FieldSpec{Column: "passes_attempted", Aliases: []string{"passes", "Att"}},
			FieldSpec{Column: "pass_completion_pct", Aliases: []string{"passes_pct", "Cmp%"}, Kind: KindFloat},
			FieldSpec{Column: "key_passes", Aliases: []string{"assisted_shots", "KP"}},
			FieldSpec{Column: "progressive_passes", Aliases: []string{"progressive_passes"}, Extra: true},
		)
	case StatDefense:
		specs = append(specs,
			FieldSpec{Column: "tackles", Aliases: []string{"tackles", "Tkl"}},
			FieldSpec{Column: "tackles_won", Aliases: []string{"tackles_won", "TklW"}},
			FieldSpec{Column: "interceptions", Aliases: []string{"interceptions", "Int"}},
			FieldSpec{Column: "blocks", Aliases: []string{"blocks", "Blocks"}},
			FieldSpec{Column: "clearances", Aliases: []string{"clearances", "Clr"}},
		)
	case StatPossession:
		specs = append(specs,
			FieldSpec{Column: "touches", Aliases: []string{"touches", "Touches"}, Extra: true},
			FieldSpec{Column: "progressive_carries", Aliases: []string{"progressive_carries"}, Extra: true},
			FieldSpec{Column: "dribbles_completed", Aliases: []string{"take_ons_won"}, Extra: true},
		)
	case StatGoalkeeping:
		specs = append(specs,
			FieldSpec{Column: "saves", Aliases: []string{"gk_saves", "Saves"}},
			FieldSpec{Column: "saves_pct", Aliases: []string{"gk_save_pct", "Save%"}, Kind: KindFloat},
			FieldSpec{Column: "clean_sheets", Aliases: []string{"gk_clean_sheets", "CS"}},
			FieldSpec{Column: "goals_against", Aliases: []string{"gk_goals_against", "GA"}},
			FieldSpec{Column: "penalty_saves", Aliases: []string{"gk_pens_save"}, Extra: true},
		)
	}

	specs = append(specs,
		FieldSpec{Column: "fouls_committed", Aliases: []string{"fouls", "Fls"}},
		FieldSpec{Column: "fouls_drawn", Aliases: []string{"fouled", "Fld"}},
	)

	return specs
}

// TeamIdentityColumns are the source columns naming the team in team-level
// tables; they are never treated as statistics.
func TeamIdentityColumns() []string {
	return []string{"team", "Team", "Squad"}
}

// PlayerIdentityColumns also cover the descriptive columns consumed by the
// identity resolver.
func PlayerIdentityColumns() []string {
	return []string{"player", "Player", "team", "Squad", "nationality", "Nation", "position", "Pos"}
}
