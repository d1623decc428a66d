package ratings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

func TestTable_Lookup(t *testing.T) {
	table := Table{"Arsenal": {Attack: 2.3, Defense: 0.9}}

	rating, ok := table.Lookup("Arsenal")
	assert.True(t, ok)
	assert.Equal(t, models.TeamRating{Attack: 2.3, Defense: 0.9}, rating)

	_, ok = table.Lookup("arsenal")
	assert.False(t, ok, "lookup is by exact name")
}

func TestTable_TeamsSorted(t *testing.T) {
	table := Table{
		"Chelsea": {Attack: 2.0, Defense: 1.1},
		"Arsenal": {Attack: 2.3, Defense: 0.9},
		"Burnley": {Attack: 1.1, Defense: 1.6},
	}

	assert.Equal(t, []string{"Arsenal", "Burnley", "Chelsea"}, table.Teams())
}

func TestCatalog_LoadAndOverride(t *testing.T) {
	c := SampleCatalog()

	err := c.Load([]Entry{
		{League: PremierLeague, Team: "Arsenal", Attack: 2.6, Defense: 0.7},
		{League: "eredivisie", Team: "Ajax", Attack: 2.2, Defense: 0.9},
	})
	require.NoError(t, err)

	arsenal, ok := c.League(PremierLeague).Lookup("Arsenal")
	require.True(t, ok)
	assert.Equal(t, 2.6, arsenal.Attack)

	_, ok = c.League("eredivisie").Lookup("Ajax")
	assert.True(t, ok)
	assert.Contains(t, c.Leagues(), "eredivisie")
}

func TestCatalog_LoadRejectsInvalidRating(t *testing.T) {
	c := NewCatalog()

	err := c.Load([]Entry{{League: PremierLeague, Team: "Broken", Attack: 1.0, Defense: 0}})

	assert.ErrorIs(t, err, models.ErrInvalidRating)
}

func TestCatalog_SetRequiresNames(t *testing.T) {
	c := NewCatalog()

	assert.Error(t, c.Set("", "Arsenal", models.TeamRating{Attack: 1, Defense: 1}))
	assert.Error(t, c.Set(PremierLeague, "", models.TeamRating{Attack: 1, Defense: 1}))
}

func TestCatalog_UnknownLeagueIsEmpty(t *testing.T) {
	c := SampleCatalog()

	table := c.League("mls")
	assert.Empty(t, table)
	_, ok := table.Lookup("LA Galaxy")
	assert.False(t, ok)
}

func TestSampleCatalog_IsIndependentCopy(t *testing.T) {
	first := SampleCatalog()
	require.NoError(t, first.Set(LaLiga, "Real Madrid", models.TeamRating{Attack: 0.1, Defense: 3.0}))

	second := SampleCatalog()
	rating, ok := second.League(LaLiga).Lookup("Real Madrid")
	require.True(t, ok)
	assert.Equal(t, 2.6, rating.Attack)
}

func TestSampleCatalog_Leagues(t *testing.T) {
	assert.Equal(t,
		[]string{Bundesliga, LaLiga, Ligue1, PremierLeague, SerieA},
		SampleCatalog().Leagues())
}

func TestLeagueIDForCountry(t *testing.T) {
	id, ok := LeagueIDForCountry("Germany")
	assert.True(t, ok)
	assert.Equal(t, Bundesliga, id)

	id, ok = LeagueIDForCountry(" england ")
	assert.True(t, ok)
	assert.Equal(t, PremierLeague, id)

	_, ok = LeagueIDForCountry("Atlantis")
	assert.False(t, ok)
}
