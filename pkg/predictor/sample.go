package predictor

import "github.com/cypherlabdev/match-predictor-service/internal/models"

// Demonstration ratings behind SamplePrediction
var (
	sampleHomeRating = models.TeamRating{Attack: 1.5, Defense: 1.0}
	sampleAwayRating = models.TeamRating{Attack: 1.2, Defense: 1.0}
)

// SamplePrediction returns a placeholder prediction for display when real
// ratings are unavailable. It is flagged Sample and must only be used when the
// caller asks for a fallback explicitly.
func SamplePrediction() *models.MatchPrediction {
	prediction, err := PredictMatch(sampleHomeRating, sampleAwayRating, models.DefaultLeagueBaseline(), DefaultMaxGoals)
	if err != nil {
		// fixed inputs are always valid
		panic(err)
	}
	prediction.Sample = true
	return prediction
}
