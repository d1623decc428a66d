package http

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
	"github.com/cypherlabdev/match-predictor-service/internal/service"
)

const maxBatchFixtures = 500

// PredictionHandler handles HTTP requests for match predictions
type PredictionHandler struct {
	service *service.PredictionService
	limiter *rate.Limiter // nil when unlimited
	logger  zerolog.Logger
}

// NewPredictionHandler creates a new prediction HTTP handler
func NewPredictionHandler(service *service.PredictionService, logger zerolog.Logger) *PredictionHandler {
	return &PredictionHandler{
		service: service,
		logger:  logger.With().Str("component", "prediction_handler").Logger(),
	}
}

// SetRateLimit caps API requests per second across all clients.
// A non-positive limit removes the cap.
func (h *PredictionHandler) SetRateLimit(perSecond float64, burst int) {
	if perSecond <= 0 {
		h.limiter = nil
		return
	}
	if burst < 1 {
		burst = 1
	}
	h.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *PredictionHandler) RegisterRoutes(mux *http.ServeMux) {
	// GET /api/v1/predictions/:league/:home/:away - Predict one fixture
	// GET /api/v1/predictions/:league?home=..&away=.. - Same, for team names containing '/'
	// GET /api/v1/predictions/sample - Placeholder prediction
	// :league may also be a country name, e.g. England
	mux.HandleFunc("/api/v1/predictions/", h.rateLimited(h.handlePredictions))

	// POST /api/v1/leagues/:league/predictions - Predict a batch of fixtures
	// GET  /api/v1/leagues/:league/predictions - Cached predictions for a league
	// GET  /api/v1/leagues/:league/teams - Rated teams of a league
	mux.HandleFunc("/api/v1/leagues/", h.rateLimited(h.handleLeagues))
}

func (h *PredictionHandler) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.limiter != nil && !h.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			h.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	}
}

// BatchRequest is the body of a batch prediction request
type BatchRequest struct {
	Fixtures []models.Fixture `json:"fixtures"`
}

func (h *PredictionHandler) handlePredictions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1/predictions/")
	if path == "sample" {
		h.handleSample(w, r)
		return
	}

	// Parse path: /api/v1/predictions/:league/:home/:away or /api/v1/predictions/:league?home=&away=
	var league, home, away string
	parts := strings.Split(path, "/")
	switch len(parts) {
	case 3:
		league, home, away = parts[0], parts[1], parts[2]
	case 1:
		league, home, away = parts[0], r.URL.Query().Get("home"), r.URL.Query().Get("away")
	default:
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/predictions/:league/:home/:away")
		return
	}

	prediction, err := h.service.Predict(r.Context(), league, home, away)
	if err != nil {
		if errors.Is(err, models.ErrUnratedTeam) && r.URL.Query().Get("fallback") == "sample" {
			h.logger.Debug().
				Err(err).
				Str("league", league).
				Msg("substituting sample prediction on request")
			prediction = h.service.SamplePrediction(league, models.Fixture{HomeTeam: home, AwayTeam: away})
		} else {
			h.domainErrorResponse(w, err)
			return
		}
	}

	h.predictionResponse(w, r, prediction)
}

// handleSample handles GET /api/v1/predictions/sample
func (h *PredictionHandler) handleSample(w http.ResponseWriter, r *http.Request) {
	fixture := models.Fixture{
		HomeTeam: r.URL.Query().Get("home"),
		AwayTeam: r.URL.Query().Get("away"),
	}
	prediction := h.service.SamplePrediction(r.URL.Query().Get("league"), fixture)

	h.predictionResponse(w, r, prediction)
}

func (h *PredictionHandler) handleLeagues(w http.ResponseWriter, r *http.Request) {
	// Parse path: /api/v1/leagues/:league/{predictions,teams}
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/leagues/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/leagues/:league/predictions or /api/v1/leagues/:league/teams")
		return
	}
	league := h.service.ResolveLeague(parts[0])

	switch {
	case parts[1] == "predictions" && r.Method == http.MethodPost:
		h.handleBatch(w, r, league)
	case parts[1] == "predictions" && r.Method == http.MethodGet:
		h.handleLeaguePredictions(w, r, league)
	case parts[1] == "teams" && r.Method == http.MethodGet:
		h.handleTeams(w, league)
	case parts[1] == "predictions" || parts[1] == "teams":
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	default:
		h.errorResponse(w, http.StatusNotFound, fmt.Sprintf("unknown resource %q", parts[1]))
	}
}

// handleBatch handles POST /api/v1/leagues/:league/predictions
func (h *PredictionHandler) handleBatch(w http.ResponseWriter, r *http.Request, league string) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Fixtures) == 0 {
		h.errorResponse(w, http.StatusBadRequest, "at least one fixture is required")
		return
	}
	if len(req.Fixtures) > maxBatchFixtures {
		h.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("at most %d fixtures per request", maxBatchFixtures))
		return
	}

	predictions, err := h.service.PredictBatch(r.Context(), league, req.Fixtures)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("league", league).
			Int("fixture_count", len(req.Fixtures)).
			Msg("batch prediction failed")
		h.errorResponse(w, http.StatusInternalServerError, "failed to predict fixtures")
		return
	}

	h.predictionsResponse(w, r, league, predictions)
}

// handleLeaguePredictions handles GET /api/v1/leagues/:league/predictions
func (h *PredictionHandler) handleLeaguePredictions(w http.ResponseWriter, r *http.Request, league string) {
	predictions, err := h.service.GetCachedByLeague(r.Context(), league)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("league", league).
			Msg("failed to retrieve league predictions")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve predictions")
		return
	}

	h.predictionsResponse(w, r, league, predictions)
}

// handleTeams handles GET /api/v1/leagues/:league/teams
func (h *PredictionHandler) handleTeams(w http.ResponseWriter, league string) {
	teams := h.service.Teams(league)
	if len(teams) == 0 {
		h.errorResponse(w, http.StatusNotFound, fmt.Sprintf("no rated teams for league %q", league))
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"league": league,
		"count":  len(teams),
		"teams":  teams,
	})
}

func (h *PredictionHandler) predictionResponse(w http.ResponseWriter, r *http.Request, prediction *models.FixturePrediction) {
	switch r.URL.Query().Get("format") {
	case "row":
		h.jsonResponse(w, http.StatusOK, prediction.ToRow())
	case "csv":
		h.csvResponse(w, []*models.FixturePrediction{prediction})
	default:
		h.jsonResponse(w, http.StatusOK, prediction)
	}
}

func (h *PredictionHandler) predictionsResponse(w http.ResponseWriter, r *http.Request, league string, predictions []*models.FixturePrediction) {
	if r.URL.Query().Get("format") == "csv" {
		h.csvResponse(w, predictions)
		return
	}
	if wantsRows(r) {
		rows := make([]*models.PredictionRow, len(predictions))
		for i, p := range predictions {
			rows[i] = p.ToRow()
		}
		h.jsonResponse(w, http.StatusOK, map[string]interface{}{
			"league": league,
			"count":  len(rows),
			"rows":   rows,
		})
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"league":      league,
		"count":       len(predictions),
		"predictions": predictions,
	})
}

func wantsRows(r *http.Request) bool {
	return r.URL.Query().Get("format") == "row"
}

// csvResponse writes predictions as CSV rows under a header line
func (h *PredictionHandler) csvResponse(w http.ResponseWriter, predictions []*models.FixturePrediction) {
	records := make([][]string, 0, len(predictions)+1)
	records = append(records, models.RowHeader)
	for _, p := range predictions {
		records = append(records, p.ToRow().Values())
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if err := csv.NewWriter(w).WriteAll(records); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode CSV response")
	}
}

// domainErrorResponse maps prediction errors to HTTP status codes
func (h *PredictionHandler) domainErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnratedTeam):
		h.errorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidRating), errors.Is(err, models.ErrInvalidBaseline):
		h.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrInvalidParameters):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("prediction failed")
		h.errorResponse(w, http.StatusInternalServerError, "prediction failed")
	}
}

// jsonResponse writes a JSON response
func (h *PredictionHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *PredictionHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
