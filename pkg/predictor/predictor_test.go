package predictor

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// mapLookup is a RatingLookup over a plain map
type mapLookup map[string]models.TeamRating

func (m mapLookup) Lookup(team string) (models.TeamRating, bool) {
	r, ok := m[team]
	return r, ok
}

// testPredictorSetup is a helper struct to hold test dependencies
type testPredictorSetup struct {
	predictor *Predictor
	baseline  models.LeagueBaseline
}

// setupTestPredictor creates a test predictor with default parameters
func setupTestPredictor() *testPredictorSetup {
	params := models.PredictionParams{
		MaxGoals:        DefaultMaxGoals,
		DefaultBaseline: models.DefaultLeagueBaseline(),
	}

	return &testPredictorSetup{
		predictor: NewPredictor(params, zerolog.Nop()),
		baseline:  params.DefaultBaseline,
	}
}

func TestNewPredictor_DefaultsMaxGoals(t *testing.T) {
	p := NewPredictor(models.PredictionParams{}, zerolog.Nop())
	assert.Equal(t, DefaultMaxGoals, p.MaxGoals())
}

func TestExpectedGoals_Formula(t *testing.T) {
	home := models.TeamRating{Attack: 2.0, Defense: 1.0}
	away := models.TeamRating{Attack: 1.0, Defense: 1.0}

	homeXG, awayXG, err := ExpectedGoals(home, away, models.DefaultLeagueBaseline())

	require.NoError(t, err)
	assert.InDelta(t, 3.2, homeXG, 1e-12)
	assert.InDelta(t, 1.2, awayXG, 1e-12)
}

func TestExpectedGoals_UsesOpponentDefense(t *testing.T) {
	home := models.TeamRating{Attack: 1.8, Defense: 0.5}
	away := models.TeamRating{Attack: 1.0, Defense: 2.0}

	homeXG, awayXG, err := ExpectedGoals(home, away, models.LeagueBaseline{AvgHomeGoals: 1.0, AvgAwayGoals: 1.0})

	require.NoError(t, err)
	assert.InDelta(t, 0.9, homeXG, 1e-12)
	assert.InDelta(t, 2.0, awayXG, 1e-12)
}

func TestPredict_ConcreteScenario(t *testing.T) {
	setup := setupTestPredictor()
	home := models.TeamRating{Attack: 2.0, Defense: 1.0}
	away := models.TeamRating{Attack: 1.0, Defense: 1.0}

	prediction, err := setup.predictor.Predict(home, away, setup.baseline)
	require.NoError(t, err)

	assert.InDelta(t, 3.2, prediction.HomeExpectedGoals, 1e-12)
	assert.InDelta(t, 1.2, prediction.AwayExpectedGoals, 1e-12)
	assert.Len(t, prediction.ScoreDistribution, DefaultMaxGoals*DefaultMaxGoals)

	// argmax of the closed-form grid
	best := -1.0
	var want models.Scoreline
	for i := 0; i < DefaultMaxGoals; i++ {
		for j := 0; j < DefaultMaxGoals; j++ {
			p := closedFormPMF(i, 3.2) * closedFormPMF(j, 1.2)
			assert.InDelta(t, p, prediction.ScoreDistribution[models.Scoreline{Home: i, Away: j}], 1e-12)
			if p > best {
				best = p
				want = models.Scoreline{Home: i, Away: j}
			}
		}
	}
	assert.Equal(t, want, prediction.MostLikelyScoreline)
	assert.Equal(t, models.Scoreline{Home: 3, Away: 1}, prediction.MostLikelyScoreline)
	assert.Greater(t, prediction.HomeWinProbability, prediction.AwayWinProbability)
	assert.False(t, prediction.Normalized)
	assert.False(t, prediction.Sample)
}

func TestPredict_OutcomeMassMatchesTruncatedCDF(t *testing.T) {
	setup := setupTestPredictor()
	home := models.TeamRating{Attack: 2.3, Defense: 0.9}
	away := models.TeamRating{Attack: 1.9, Defense: 1.2}

	prediction, err := setup.predictor.Predict(home, away, setup.baseline)
	require.NoError(t, err)

	cdfHome, cdfAway := 0.0, 0.0
	for k := 0; k < DefaultMaxGoals; k++ {
		cdfHome += closedFormPMF(k, prediction.HomeExpectedGoals)
		cdfAway += closedFormPMF(k, prediction.AwayExpectedGoals)
	}

	assert.InDelta(t, cdfHome*cdfAway, prediction.OutcomeTotal(), 1e-12)
	assert.Less(t, prediction.OutcomeTotal(), 1.0)
}

func TestPredict_OutcomeMassNearOneForModerateXG(t *testing.T) {
	setup := setupTestPredictor()
	rating := models.TeamRating{Attack: 1.0, Defense: 1.0}
	baseline := models.LeagueBaseline{AvgHomeGoals: 1.5, AvgAwayGoals: 1.2}

	prediction, err := setup.predictor.Predict(rating, rating, baseline)
	require.NoError(t, err)

	total := prediction.OutcomeTotal()
	assert.Less(t, total, 1.0)
	assert.Greater(t, total, 0.99)
}

func TestPredict_Symmetry(t *testing.T) {
	setup := setupTestPredictor()
	home := models.TeamRating{Attack: 2.1, Defense: 0.8}
	away := models.TeamRating{Attack: 1.4, Defense: 1.3}

	forward, err := setup.predictor.Predict(home, away, setup.baseline)
	require.NoError(t, err)
	reverse, err := setup.predictor.Predict(away, home, setup.baseline.Swapped())
	require.NoError(t, err)

	assert.InDelta(t, forward.HomeWinProbability, reverse.AwayWinProbability, 1e-12)
	assert.InDelta(t, forward.AwayWinProbability, reverse.HomeWinProbability, 1e-12)
	assert.InDelta(t, forward.DrawProbability, reverse.DrawProbability, 1e-12)
	assert.Equal(t, forward.HomeExpectedGoals, reverse.AwayExpectedGoals)
	assert.Equal(t, forward.AwayExpectedGoals, reverse.HomeExpectedGoals)
	assert.InDelta(t, forward.BothTeamsToScoreProbability, reverse.BothTeamsToScoreProbability, 1e-12)
	assert.InDelta(t, forward.Over25GoalsProbability, reverse.Over25GoalsProbability, 1e-12)
}

func TestPredict_MonotonicInHomeAttack(t *testing.T) {
	setup := setupTestPredictor()
	away := models.TeamRating{Attack: 1.0, Defense: 1.0}

	prevXG := -1.0
	prevWin := -1.0
	for attack := 0.5; attack <= 1.5; attack += 0.1 {
		prediction, err := setup.predictor.Predict(models.TeamRating{Attack: attack, Defense: 1.0}, away, setup.baseline)
		require.NoError(t, err)

		assert.Greater(t, prediction.HomeExpectedGoals, prevXG, "attack=%v", attack)
		assert.GreaterOrEqual(t, prediction.HomeWinProbability, prevWin, "attack=%v", attack)
		prevXG = prediction.HomeExpectedGoals
		prevWin = prediction.HomeWinProbability
	}
}

func TestPredict_BothTeamsToScoreClosedForm(t *testing.T) {
	setup := setupTestPredictor()
	home := models.TeamRating{Attack: 1.7, Defense: 1.1}
	away := models.TeamRating{Attack: 1.3, Defense: 0.9}

	prediction, err := setup.predictor.Predict(home, away, setup.baseline)
	require.NoError(t, err)

	want := 1 - math.Exp(-prediction.HomeExpectedGoals)*math.Exp(-prediction.AwayExpectedGoals)
	assert.Equal(t, want, prediction.BothTeamsToScoreProbability)
}

func TestPredict_Over25MatchesTotalGoalsPoisson(t *testing.T) {
	setup := setupTestPredictor()
	home := models.TeamRating{Attack: 1.7, Defense: 1.1}
	away := models.TeamRating{Attack: 1.3, Defense: 0.9}

	prediction, err := setup.predictor.Predict(home, away, setup.baseline)
	require.NoError(t, err)

	// the sum of independent Poisson goals is Poisson(homeXG + awayXG)
	total := prediction.HomeExpectedGoals + prediction.AwayExpectedGoals
	under := closedFormPMF(0, total) + closedFormPMF(1, total) + closedFormPMF(2, total)
	assert.InDelta(t, 1-under, prediction.Over25GoalsProbability, 1e-12)
}

func TestPredict_Deterministic(t *testing.T) {
	setup := setupTestPredictor()
	home := models.TeamRating{Attack: 2.7, Defense: 0.7}
	away := models.TeamRating{Attack: 2.5, Defense: 0.8}

	first, err := setup.predictor.Predict(home, away, setup.baseline)
	require.NoError(t, err)
	second, err := setup.predictor.Predict(home, away, setup.baseline)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPredict_ZeroExpectedGoalsIsValid(t *testing.T) {
	setup := setupTestPredictor()
	home := models.TeamRating{Attack: 0, Defense: 1.0}
	away := models.TeamRating{Attack: 1.0, Defense: 1.0}

	prediction, err := setup.predictor.Predict(home, away, setup.baseline)
	require.NoError(t, err)

	assert.Equal(t, 0.0, prediction.HomeExpectedGoals)
	assert.Equal(t, 0.0, prediction.HomeWinProbability)
	assert.Equal(t, models.Scoreline{Home: 0, Away: 1}, prediction.MostLikelyScoreline)
	assert.Equal(t, 1-math.Exp(-prediction.AwayExpectedGoals), prediction.BothTeamsToScoreProbability)
}

func TestPredict_TieBreakRowMajor(t *testing.T) {
	setup := setupTestPredictor()
	rating := models.TeamRating{Attack: 1.0, Defense: 1.0}
	baseline := models.LeagueBaseline{AvgHomeGoals: 1.0, AvgAwayGoals: 1.0}

	// lambda = 1 on both sides: 0-0, 0-1, 1-0 and 1-1 are equally likely
	prediction, err := setup.predictor.Predict(rating, rating, baseline)
	require.NoError(t, err)

	assert.Equal(t, prediction.ScoreDistribution[models.Scoreline{Home: 0, Away: 0}],
		prediction.ScoreDistribution[models.Scoreline{Home: 1, Away: 1}])
	assert.Equal(t, models.Scoreline{Home: 0, Away: 0}, prediction.MostLikelyScoreline)
}

func TestPredict_InvalidInputs(t *testing.T) {
	setup := setupTestPredictor()
	valid := models.TeamRating{Attack: 1.0, Defense: 1.0}

	tests := []struct {
		name     string
		home     models.TeamRating
		away     models.TeamRating
		baseline models.LeagueBaseline
		want     error
	}{
		{"zero home defense", models.TeamRating{Attack: 1.0, Defense: 0}, valid, setup.baseline, models.ErrInvalidRating},
		{"negative away defense", valid, models.TeamRating{Attack: 1.0, Defense: -1}, setup.baseline, models.ErrInvalidRating},
		{"negative attack", models.TeamRating{Attack: -0.1, Defense: 1.0}, valid, setup.baseline, models.ErrInvalidRating},
		{"NaN attack", models.TeamRating{Attack: math.NaN(), Defense: 1.0}, valid, setup.baseline, models.ErrInvalidRating},
		{"infinite defense", valid, models.TeamRating{Attack: 1.0, Defense: math.Inf(1)}, setup.baseline, models.ErrInvalidRating},
		{"zero baseline", valid, valid, models.LeagueBaseline{AvgHomeGoals: 0, AvgAwayGoals: 1.2}, models.ErrInvalidBaseline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prediction, err := setup.predictor.Predict(tt.home, tt.away, tt.baseline)

			assert.Nil(t, prediction)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPredictMatch_UnderflowedGridRejected(t *testing.T) {
	// home xG = 600 * 1.6 = 960, so e^-960 is 0 and the whole grid vanishes
	home := models.TeamRating{Attack: 600, Defense: 1.0}
	away := models.TeamRating{Attack: 1.0, Defense: 1.0}

	prediction, err := PredictMatch(home, away, models.DefaultLeagueBaseline(), DefaultMaxGoals)
	assert.Nil(t, prediction)
	assert.ErrorIs(t, err, models.ErrInvalidRating)
}

func TestPredictMatch_OverflowingExpectedGoalsRejected(t *testing.T) {
	home := models.TeamRating{Attack: math.MaxFloat64, Defense: 1.0}
	away := models.TeamRating{Attack: 1.0, Defense: 1e-10}

	_, _, err := ExpectedGoals(home, away, models.DefaultLeagueBaseline())
	assert.ErrorIs(t, err, models.ErrInvalidRating)
}

func TestPredictMatch_TinyMassKeepsTrueArgmax(t *testing.T) {
	// home xG = 400: every cell is minute but nonzero
	home := models.TeamRating{Attack: 250, Defense: 1.0}
	away := models.TeamRating{Attack: 1.0, Defense: 1.0}

	prediction, err := PredictMatch(home, away, models.DefaultLeagueBaseline(), DefaultMaxGoals)
	require.NoError(t, err)
	assert.Equal(t, models.Scoreline{Home: 5, Away: 1}, prediction.MostLikelyScoreline)
	assert.Greater(t, prediction.HomeWinProbability, 0.0)

	normalized := prediction.Renormalized()
	assert.True(t, normalized.Normalized)
	assert.InDelta(t, 1.0, normalized.OutcomeTotal(), 1e-9)
}

func TestPredictMatch_MaxGoalsBounds(t *testing.T) {
	rating := models.TeamRating{Attack: 1.0, Defense: 1.0}

	for _, k := range []int{0, 2, 11} {
		prediction, err := PredictMatch(rating, rating, models.DefaultLeagueBaseline(), k)
		assert.Nil(t, prediction)
		assert.ErrorIs(t, err, models.ErrInvalidParameters, "k=%d", k)
	}

	prediction, err := PredictMatch(rating, rating, models.DefaultLeagueBaseline(), MaxMaxGoals)
	require.NoError(t, err)
	assert.Len(t, prediction.ScoreDistribution, MaxMaxGoals*MaxMaxGoals)
	assert.Equal(t, MaxMaxGoals, prediction.MaxGoals)
}

func TestPredictFixture_Success(t *testing.T) {
	setup := setupTestPredictor()
	lookup := mapLookup{
		"Manchester City": {Attack: 2.7, Defense: 0.7},
		"Liverpool":       {Attack: 2.5, Defense: 0.8},
	}

	prediction, err := setup.predictor.PredictFixture(lookup, "Manchester City", "Liverpool", setup.baseline)
	require.NoError(t, err)

	direct, err := setup.predictor.Predict(lookup["Manchester City"], lookup["Liverpool"], setup.baseline)
	require.NoError(t, err)
	assert.Equal(t, direct, prediction)
}

func TestPredictFixture_UnratedTeam(t *testing.T) {
	setup := setupTestPredictor()
	lookup := mapLookup{"Liverpool": {Attack: 2.5, Defense: 0.8}}

	prediction, err := setup.predictor.PredictFixture(lookup, "Unknown FC", "Liverpool", setup.baseline)

	assert.Nil(t, prediction)
	require.ErrorIs(t, err, models.ErrUnratedTeam)
	de, ok := models.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Unknown FC"}, de.Teams)
}

func TestPredictFixture_BothUnrated(t *testing.T) {
	setup := setupTestPredictor()

	_, err := setup.predictor.PredictFixture(mapLookup{}, "Unknown FC", "Nobody United", setup.baseline)

	de, ok := models.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, models.KindUnratedTeam, de.Kind)
	assert.Equal(t, []string{"Unknown FC", "Nobody United"}, de.Teams)
}

func TestPredictFixture_InvalidRatingWrapped(t *testing.T) {
	setup := setupTestPredictor()
	lookup := mapLookup{
		"Broken": {Attack: 1.0, Defense: 0},
		"Fine":   {Attack: 1.0, Defense: 1.0},
	}

	_, err := setup.predictor.PredictFixture(lookup, "Fine", "Broken", setup.baseline)

	assert.ErrorIs(t, err, models.ErrInvalidRating)
	assert.Contains(t, err.Error(), "Fine vs Broken")
}

func TestSamplePrediction_IsFlagged(t *testing.T) {
	sample := SamplePrediction()

	assert.True(t, sample.Sample)
	assert.Greater(t, sample.HomeExpectedGoals, 0.0)
	assert.Len(t, sample.ScoreDistribution, DefaultMaxGoals*DefaultMaxGoals)

	// each call hands out a fresh value
	sample.HomeWinProbability = 0
	assert.NotEqual(t, 0.0, SamplePrediction().HomeWinProbability)
}
