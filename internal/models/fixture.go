package models

import "time"

// Fixture is a scheduled match between two named teams
type Fixture struct {
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// KafkaFixtureBatchMessage represents a batch of upcoming fixtures from the fixture feed
type KafkaFixtureBatchMessage struct {
	BatchID   string    `json:"batch_id"`
	League    string    `json:"league"`
	Fixtures  []Fixture `json:"fixtures"`
	Timestamp time.Time `json:"timestamp"`
}

// KafkaPredictionBatchMessage represents the predictions published for a fixture batch
type KafkaPredictionBatchMessage struct {
	BatchID     string               `json:"batch_id"`
	League      string               `json:"league"`
	Predictions []*FixturePrediction `json:"predictions"`
	Timestamp   time.Time            `json:"timestamp"`
}
