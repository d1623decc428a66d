package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PredictionRow is a flat, display-ready view of a FixturePrediction
type PredictionRow struct {
	League          string           `json:"league"`
	HomeTeam        string           `json:"home_team"`
	AwayTeam        string           `json:"away_team"`
	ScheduledAt     string           `json:"scheduled_at"`
	Status          PredictionStatus `json:"status"`
	HomeXG          decimal.Decimal  `json:"home_xg"`
	AwayXG          decimal.Decimal  `json:"away_xg"`
	HomeWinPercent  decimal.Decimal  `json:"home_win_pct"`
	DrawPercent     decimal.Decimal  `json:"draw_pct"`
	AwayWinPercent  decimal.Decimal  `json:"away_win_pct"`
	HomeFairOdds    decimal.Decimal  `json:"home_fair_odds"`
	DrawFairOdds    decimal.Decimal  `json:"draw_fair_odds"`
	AwayFairOdds    decimal.Decimal  `json:"away_fair_odds"`
	Outcome         string           `json:"outcome"` // 1, X or 2
	MostLikelyScore string           `json:"most_likely_score"`
	BTTSPercent     decimal.Decimal  `json:"btts_pct"`
	Over25Percent   decimal.Decimal  `json:"over_2_5_pct"`
	Sample          bool             `json:"sample"`
}

// RowHeader lists the column names of PredictionRow.Values
var RowHeader = []string{
	"league", "home_team", "away_team", "scheduled_at", "status",
	"home_xg", "away_xg", "home_win_pct", "draw_pct", "away_win_pct",
	"home_fair_odds", "draw_fair_odds", "away_fair_odds",
	"outcome", "most_likely_score", "btts_pct", "over_2_5_pct", "sample",
}

// ToRow flattens the prediction. Rows without a prediction keep zero numeric columns.
func (fp *FixturePrediction) ToRow() *PredictionRow {
	row := &PredictionRow{
		League:   fp.League,
		HomeTeam: fp.Fixture.HomeTeam,
		AwayTeam: fp.Fixture.AwayTeam,
		Status:   fp.Status,
	}
	if !fp.Fixture.ScheduledAt.IsZero() {
		row.ScheduledAt = fp.Fixture.ScheduledAt.UTC().Format(time.RFC3339)
	}

	p := fp.Prediction
	if p == nil {
		return row
	}

	row.HomeXG = decimal.NewFromFloat(p.HomeExpectedGoals).Round(2)
	row.AwayXG = decimal.NewFromFloat(p.AwayExpectedGoals).Round(2)
	row.HomeWinPercent = percent(p.HomeWinProbability)
	row.DrawPercent = percent(p.DrawProbability)
	row.AwayWinPercent = percent(p.AwayWinProbability)
	row.HomeFairOdds = fairOdds(p.HomeWinProbability)
	row.DrawFairOdds = fairOdds(p.DrawProbability)
	row.AwayFairOdds = fairOdds(p.AwayWinProbability)
	row.Outcome = outcomeLabel(p)
	row.MostLikelyScore = p.MostLikelyScoreline.String()
	row.BTTSPercent = percent(p.BothTeamsToScoreProbability)
	row.Over25Percent = percent(p.Over25GoalsProbability)
	row.Sample = p.Sample

	return row
}

// Values returns the row as strings in RowHeader order
func (r *PredictionRow) Values() []string {
	sample := "false"
	if r.Sample {
		sample = "true"
	}
	return []string{
		r.League, r.HomeTeam, r.AwayTeam, r.ScheduledAt, string(r.Status),
		r.HomeXG.String(), r.AwayXG.String(),
		r.HomeWinPercent.String(), r.DrawPercent.String(), r.AwayWinPercent.String(),
		r.HomeFairOdds.String(), r.DrawFairOdds.String(), r.AwayFairOdds.String(),
		r.Outcome, r.MostLikelyScore,
		r.BTTSPercent.String(), r.Over25Percent.String(), sample,
	}
}

func percent(p float64) decimal.Decimal {
	return decimal.NewFromFloat(p).Mul(hundred).Round(1)
}

// fairOdds converts a probability to margin-free decimal odds; zero when p is zero
func fairOdds(p float64) decimal.Decimal {
	if p <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).DivRound(decimal.NewFromFloat(p), 2)
}

func outcomeLabel(p *MatchPrediction) string {
	switch {
	case p.HomeWinProbability >= p.DrawProbability && p.HomeWinProbability >= p.AwayWinProbability:
		return "1"
	case p.DrawProbability >= p.AwayWinProbability:
		return "X"
	default:
		return "2"
	}
}
