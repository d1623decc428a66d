package predictor

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

const (
	// DefaultMaxGoals is the truncation bound K: goal counts 0..5 per side
	DefaultMaxGoals = 6
	MinMaxGoals     = 3 // over 2.5 needs every total of 0, 1 and 2 goals on the grid
	MaxMaxGoals     = 10
)

// RatingLookup resolves a team name to its rating
type RatingLookup interface {
	Lookup(team string) (models.TeamRating, bool)
}

// Predictor turns team ratings into match outcome distributions
type Predictor struct {
	params models.PredictionParams
	logger zerolog.Logger
}

// NewPredictor creates a new match predictor
func NewPredictor(params models.PredictionParams, logger zerolog.Logger) *Predictor {
	if params.MaxGoals == 0 {
		params.MaxGoals = DefaultMaxGoals
	}
	return &Predictor{
		params: params,
		logger: logger.With().Str("component", "predictor").Logger(),
	}
}

// MaxGoals returns the truncation bound used by Predict
func (p *Predictor) MaxGoals() int {
	return p.params.MaxGoals
}

// Predict computes the outcome distribution for a fixture from both ratings
func (p *Predictor) Predict(home, away models.TeamRating, baseline models.LeagueBaseline) (*models.MatchPrediction, error) {
	prediction, err := PredictMatch(home, away, baseline, p.params.MaxGoals)
	if err != nil {
		return nil, err
	}

	p.logger.Debug().
		Float64("home_xg", prediction.HomeExpectedGoals).
		Float64("away_xg", prediction.AwayExpectedGoals).
		Str("most_likely", prediction.MostLikelyScoreline.String()).
		Msg("predicted match")

	return prediction, nil
}

// PredictFixture resolves both team names through lookup and predicts the fixture.
// A missing team yields an unrated_team DomainError, never a zero prediction.
func (p *Predictor) PredictFixture(lookup RatingLookup, homeTeam, awayTeam string, baseline models.LeagueBaseline) (*models.MatchPrediction, error) {
	home, homeOK := lookup.Lookup(homeTeam)
	away, awayOK := lookup.Lookup(awayTeam)

	var missing []string
	if !homeOK {
		missing = append(missing, homeTeam)
	}
	if !awayOK {
		missing = append(missing, awayTeam)
	}
	if len(missing) > 0 {
		return nil, models.NewUnratedTeamError(missing...)
	}

	prediction, err := p.Predict(home, away, baseline)
	if err != nil {
		return nil, fmt.Errorf("%s vs %s: %w", homeTeam, awayTeam, err)
	}
	return prediction, nil
}

// ExpectedGoals derives each side's Poisson rate: a side's attack over the
// opponent's defense, scaled by the league average for its venue.
func ExpectedGoals(home, away models.TeamRating, baseline models.LeagueBaseline) (float64, float64, error) {
	if !home.Valid() {
		return 0, 0, &models.DomainError{
			Kind:    models.KindInvalidRating,
			Message: fmt.Sprintf("home rating attack=%v defense=%v", home.Attack, home.Defense),
		}
	}
	if !away.Valid() {
		return 0, 0, &models.DomainError{
			Kind:    models.KindInvalidRating,
			Message: fmt.Sprintf("away rating attack=%v defense=%v", away.Attack, away.Defense),
		}
	}
	if !baseline.Valid() {
		return 0, 0, &models.DomainError{
			Kind:    models.KindInvalidBaseline,
			Message: fmt.Sprintf("avg_home_goals=%v avg_away_goals=%v", baseline.AvgHomeGoals, baseline.AvgAwayGoals),
		}
	}

	homeXG := (home.Attack / away.Defense) * baseline.AvgHomeGoals
	awayXG := (away.Attack / home.Defense) * baseline.AvgAwayGoals
	if math.IsInf(homeXG, 0) || math.IsInf(awayXG, 0) {
		return 0, 0, &models.DomainError{
			Kind:    models.KindInvalidRating,
			Message: fmt.Sprintf("expected goals overflow (home=%v away=%v)", homeXG, awayXG),
		}
	}
	return homeXG, awayXG, nil
}

// PredictMatch enumerates the maxGoals x maxGoals grid of independent Poisson
// scorelines and aggregates it. The grid is not renormalized, so the 1X2 total
// falls short of 1 by the truncated tail mass.
func PredictMatch(home, away models.TeamRating, baseline models.LeagueBaseline, maxGoals int) (*models.MatchPrediction, error) {
	if maxGoals < MinMaxGoals || maxGoals > MaxMaxGoals {
		return nil, &models.DomainError{
			Kind:    models.KindInvalidParameters,
			Message: fmt.Sprintf("max goals %d outside [%d, %d]", maxGoals, MinMaxGoals, MaxMaxGoals),
		}
	}

	homeXG, awayXG, err := ExpectedGoals(home, away, baseline)
	if err != nil {
		return nil, err
	}

	homePMF := poissonPMFs(homeXG, maxGoals)
	awayPMF := poissonPMFs(awayXG, maxGoals)

	prediction := &models.MatchPrediction{
		HomeExpectedGoals: homeXG,
		AwayExpectedGoals: awayXG,
		ScoreDistribution: make(map[models.Scoreline]float64, maxGoals*maxGoals),
		MaxGoals:          maxGoals,
	}

	best := -1.0
	under25 := 0.0
	for i := 0; i < maxGoals; i++ {
		for j := 0; j < maxGoals; j++ {
			prob := homePMF[i] * awayPMF[j]
			prediction.ScoreDistribution[models.Scoreline{Home: i, Away: j}] = prob

			switch {
			case i > j:
				prediction.HomeWinProbability += prob
			case i == j:
				prediction.DrawProbability += prob
			default:
				prediction.AwayWinProbability += prob
			}

			// strict comparison keeps the first maximum in row-major order
			if prob > best {
				best = prob
				prediction.MostLikelyScoreline = models.Scoreline{Home: i, Away: j}
			}

			if i+j <= 2 {
				under25 += prob
			}
		}
	}

	// e^-xG underflows for extreme ratings; an all-zero grid has no argmax or 1X2
	if total := prediction.OutcomeTotal(); !(total > 0) {
		return nil, &models.DomainError{
			Kind: models.KindInvalidRating,
			Message: fmt.Sprintf("expected goals %.4g vs %.4g leave no probability mass on the %dx%d grid",
				homeXG, awayXG, maxGoals, maxGoals),
		}
	}

	prediction.BothTeamsToScoreProbability = 1 - homePMF[0]*awayPMF[0]
	prediction.Over25GoalsProbability = 1 - under25

	return prediction, nil
}
