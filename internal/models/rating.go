package models

import "math"

// TeamRating holds a team's strength relative to the league average.
// Defense is a goals-conceded proxy: larger means a weaker defense.
type TeamRating struct {
	Attack  float64 `json:"attack"`
	Defense float64 `json:"defense"`
}

// Valid reports whether the rating can be fed to the engine
func (r TeamRating) Valid() bool {
	if math.IsNaN(r.Attack) || math.IsInf(r.Attack, 0) || r.Attack < 0 {
		return false
	}
	if math.IsNaN(r.Defense) || math.IsInf(r.Defense, 0) || r.Defense <= 0 {
		return false
	}
	return true
}

// LeagueBaseline holds league-wide average goals per game for home and away sides
type LeagueBaseline struct {
	AvgHomeGoals float64 `json:"avg_home_goals"`
	AvgAwayGoals float64 `json:"avg_away_goals"`
}

// DefaultLeagueBaseline returns the historical averages used when a league has no override
func DefaultLeagueBaseline() LeagueBaseline {
	return LeagueBaseline{
		AvgHomeGoals: 1.6,
		AvgAwayGoals: 1.2,
	}
}

// Valid reports whether both averages are finite and positive
func (b LeagueBaseline) Valid() bool {
	for _, v := range []float64{b.AvgHomeGoals, b.AvgAwayGoals} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return false
		}
	}
	return true
}

// Swapped returns the baseline seen from the other side of the fixture
func (b LeagueBaseline) Swapped() LeagueBaseline {
	return LeagueBaseline{
		AvgHomeGoals: b.AvgAwayGoals,
		AvgAwayGoals: b.AvgHomeGoals,
	}
}

// PredictionParams holds parameters for match prediction
type PredictionParams struct {
	MaxGoals        int                       // Truncation bound K: goal counts 0..K-1 per side
	Renormalize     bool                      // Rescale 1X2 to sum to 1 at the service boundary
	Workers         int                       // Parallel fixtures per batch
	DefaultBaseline LeagueBaseline            // Baseline for leagues without an override
	LeagueBaselines map[string]LeagueBaseline // Per-league overrides
}

// BaselineFor returns the league override or the default baseline
func (p PredictionParams) BaselineFor(league string) LeagueBaseline {
	if b, ok := p.LeagueBaselines[league]; ok {
		return b
	}
	return p.DefaultBaseline
}
