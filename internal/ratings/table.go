package ratings

import (
	"fmt"
	"sort"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// Table maps exact team names to ratings for one league
type Table map[string]models.TeamRating

// Lookup implements predictor.RatingLookup
func (t Table) Lookup(team string) (models.TeamRating, bool) {
	r, ok := t[team]
	return r, ok
}

// Teams returns the rated team names in alphabetical order
func (t Table) Teams() []string {
	teams := make([]string, 0, len(t))
	for name := range t {
		teams = append(teams, name)
	}
	sort.Strings(teams)
	return teams
}

// Entry is one configured team rating
type Entry struct {
	League  string
	Team    string
	Attack  float64
	Defense float64
}

// Catalog holds rating tables keyed by league id
type Catalog struct {
	leagues map[string]Table
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{leagues: make(map[string]Table)}
}

// Set stores or replaces a team's rating
func (c *Catalog) Set(league, team string, rating models.TeamRating) error {
	if league == "" || team == "" {
		return fmt.Errorf("league and team are required")
	}
	if !rating.Valid() {
		return fmt.Errorf("%s/%s: %w", league, team, models.ErrInvalidRating)
	}
	table, ok := c.leagues[league]
	if !ok {
		table = make(Table)
		c.leagues[league] = table
	}
	table[team] = rating
	return nil
}

// Load applies entries on top of the existing tables
func (c *Catalog) Load(entries []Entry) error {
	for _, e := range entries {
		if err := c.Set(e.League, e.Team, models.TeamRating{Attack: e.Attack, Defense: e.Defense}); err != nil {
			return fmt.Errorf("failed to load rating: %w", err)
		}
	}
	return nil
}

// League returns the table for a league. Unknown leagues give an empty table,
// so every team in them is unrated.
func (c *Catalog) League(league string) Table {
	if table, ok := c.leagues[league]; ok {
		return table
	}
	return Table{}
}

// Leagues returns the league ids in alphabetical order
func (c *Catalog) Leagues() []string {
	leagues := make([]string, 0, len(c.leagues))
	for id := range c.leagues {
		leagues = append(leagues, id)
	}
	sort.Strings(leagues)
	return leagues
}
