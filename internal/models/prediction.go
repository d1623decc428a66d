package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Scoreline is a final score; its text form "H-A" keys the score distribution in JSON
type Scoreline struct {
	Home int
	Away int
}

func (s Scoreline) String() string {
	return fmt.Sprintf("%d-%d", s.Home, s.Away)
}

// MarshalText implements encoding.TextMarshaler
func (s Scoreline) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Scoreline) UnmarshalText(text []byte) error {
	var home, away int
	if _, err := fmt.Sscanf(string(text), "%d-%d", &home, &away); err != nil {
		return fmt.Errorf("invalid scoreline %q: %w", text, err)
	}
	if home < 0 || away < 0 {
		return fmt.Errorf("invalid scoreline %q: negative goals", text)
	}
	s.Home, s.Away = home, away
	return nil
}

// MatchPrediction is the outcome distribution for one fixture.
// Probabilities are fractions in [0,1].
type MatchPrediction struct {
	HomeExpectedGoals           float64               `json:"home_expected_goals"`
	AwayExpectedGoals           float64               `json:"away_expected_goals"`
	HomeWinProbability          float64               `json:"home_win_probability"`
	DrawProbability             float64               `json:"draw_probability"`
	AwayWinProbability          float64               `json:"away_win_probability"`
	MostLikelyScoreline         Scoreline             `json:"most_likely_scoreline"`
	BothTeamsToScoreProbability float64               `json:"both_teams_to_score_probability"`
	Over25GoalsProbability      float64               `json:"over_2_5_goals_probability"`
	ScoreDistribution           map[Scoreline]float64 `json:"score_distribution"`
	MaxGoals                    int                   `json:"max_goals"`
	Normalized                  bool                  `json:"normalized"` // 1X2 rescaled to sum to 1
	Sample                      bool                  `json:"sample"`     // placeholder, not computed from ratings
}

// OutcomeTotal returns home + draw + away probability
func (p *MatchPrediction) OutcomeTotal() float64 {
	return p.HomeWinProbability + p.DrawProbability + p.AwayWinProbability
}

// Renormalized returns a copy whose 1X2 probabilities sum to 1.
// The score distribution is left as enumerated. A prediction without mass
// cannot be rescaled and comes back unchanged with Normalized false.
func (p *MatchPrediction) Renormalized() *MatchPrediction {
	out := *p
	total := p.OutcomeTotal()
	if !(total > 0) {
		return &out
	}
	out.HomeWinProbability = p.HomeWinProbability / total
	out.DrawProbability = p.DrawProbability / total
	out.AwayWinProbability = p.AwayWinProbability / total
	out.Normalized = true
	return &out
}

// PredictionStatus tags what kind of result a FixturePrediction carries
type PredictionStatus string

const (
	StatusPredicted     PredictionStatus = "predicted"
	StatusUnrated       PredictionStatus = "unrated"
	StatusInvalidRating PredictionStatus = "invalid_rating"
	StatusInvalidInput  PredictionStatus = "invalid_input"
	StatusSample        PredictionStatus = "sample"
)

// FixturePrediction wraps a prediction with the fixture it belongs to
type FixturePrediction struct {
	ID          uuid.UUID        `json:"id"`
	League      string           `json:"league"`
	Fixture     Fixture          `json:"fixture"`
	Status      PredictionStatus `json:"status"`
	Error       string           `json:"error,omitempty"`
	Prediction  *MatchPrediction `json:"prediction,omitempty"`
	PredictedAt time.Time        `json:"predicted_at"`
}

// StatusForError maps a prediction failure to the status recorded for the fixture
func StatusForError(err error) PredictionStatus {
	de, ok := AsDomainError(err)
	if !ok {
		return StatusInvalidInput
	}
	switch de.Kind {
	case KindUnratedTeam:
		return StatusUnrated
	case KindInvalidRating:
		return StatusInvalidRating
	default:
		return StatusInvalidInput
	}
}

// Genuine reports whether the prediction was computed from real ratings
func (fp *FixturePrediction) Genuine() bool {
	return fp.Status == StatusPredicted && fp.Prediction != nil && !fp.Prediction.Sample
}
