package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/betfinder/internal/domain/assistant"
	"github.com/riskibarqy/betfinder/internal/domain/competition"
	"github.com/riskibarqy/betfinder/internal/domain/match"
	"github.com/riskibarqy/betfinder/internal/domain/stats"
	"github.com/riskibarqy/betfinder/internal/domain/team"
	assistantmock "github.com/riskibarqy/betfinder/internal/mocks/domain/assistant"
	matchmock "github.com/riskibarqy/betfinder/internal/mocks/domain/match"
	"github.com/riskibarqy/betfinder/internal/platform/logging"
	"github.com/riskibarqy/betfinder/internal/usecase"
)

type testEnv struct {
	matches      *matchmock.Repository
	stats        *stubStatsRepository
	competitions *stubCompetitionRepository
	llm          *assistantmock.LLM
	runner       *assistantmock.QueryRunner
	router       http.Handler
}

func newTestEnv(t *testing.T, verifier TokenVerifier) *testEnv {
	t.Helper()

	env := &testEnv{
		matches:      matchmock.NewRepository(t),
		stats:        &stubStatsRepository{results: map[string][]stats.Result{}},
		competitions: &stubCompetitionRepository{},
		llm:          assistantmock.NewLLM(t),
		runner:       assistantmock.NewQueryRunner(t),
	}
	env.router = newTestRouter(env, env.llm, verifier)
	return env
}

func newTestRouter(env *testEnv, llm assistant.LLM, verifier TokenVerifier) http.Handler {
	logger := logging.NewNop()
	statsService := usecase.NewStatsService(env.stats, usecase.StatsConfig{WindowSize: 20, Concurrency: 2}, logger)
	handler := NewHandler(
		usecase.NewMatchService(env.matches, statsService, 0),
		statsService,
		usecase.NewCatalogService(env.competitions, env.competitions),
		usecase.NewAssistantService(llm, env.runner, statsService, usecase.AssistantConfig{}, logger),
		logger,
	)
	handler.now = func() time.Time { return time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC) }
	return NewRouter(handler, verifier, logger, true, []string{"*"}, 0)
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestListMatches_EnrichesAndAppliesThresholds(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	kickoff := time.Date(2025, 3, 2, 15, 0, 0, 0, time.UTC)
	env.matches.On("List", mock.Anything, mock.MatchedBy(func(f match.Filter) bool {
		return f.CompetitionID != nil && *f.CompetitionID == 2002 &&
			f.StartDate != nil && f.StartDate.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			f.Status == match.StatusFinished && f.Limit == 500
	})).Return([]match.Match{
		{ID: 10, KickoffAt: kickoff, Status: match.StatusFinished, HomeTeam: team.Team{ID: 1, Name: "Bayern"}, AwayTeam: team.Team{ID: 2, Name: "Dortmund"}},
		{ID: 11, KickoffAt: kickoff, Status: match.StatusFinished, HomeTeam: team.Team{ID: 3, Name: "Leipzig"}, AwayTeam: team.Team{ID: 4, Name: "Mainz"}},
	}, nil).Once()

	env.stats.set(1, stats.RoleHome, stats.Result{Home: 2, Away: 1}, stats.Result{Home: 1, Away: 1})
	env.stats.set(3, stats.RoleHome, stats.Result{Home: 0, Away: 0})

	rec := env.do(t, http.MethodGet, "/v1/matches?competitionId=2002&startDate=2025-03-01&status=finished&homeBothScoreMin=50", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeEnvelope[matchListDTO](t, rec)
	assert.Equal(t, "2.0", body.APIVersion)
	require.Equal(t, 1, body.Data.Count)
	got := body.Data.Matches[0]
	assert.Equal(t, int64(10), got.ID)
	assert.Equal(t, "2025-03-02T15:00:00Z", got.UTCDate)
	require.NotNil(t, got.HomeStats)
	assert.Equal(t, 2, got.HomeStats.TotalGames)
	assert.Equal(t, 100, got.HomeStats.BothTeamsScored)
	assert.Equal(t, 50, got.HomeStats.Wins)
	assert.Nil(t, got.AwayStats, "a side without finished matches has no stats")
}

func TestListMatches_RejectsInvalidParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
	}{
		{name: "threshold above 100", query: "homeWinMin=150"},
		{name: "threshold not a number", query: "awayDrawMin=abc"},
		{name: "bad date", query: "startDate=01/03/2025"},
		{name: "bad competition", query: "competitionId=-1"},
		{name: "bad limit", query: "limit=0"},
		{name: "unknown status", query: "status=LIVE"},
		{name: "inverted range", query: "startDate=2025-03-05&endDate=2025-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nil)
			rec := env.do(t, http.MethodGet, "/v1/matches?"+tt.query, "")

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeEnvelope[any](t, rec)
			require.NotNil(t, body.Error)
			assert.Equal(t, "invalidInput", body.Error.Errors[0].Reason)
		})
	}
}

func TestGetMatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	home, away := 2, 1
	env.matches.On("GetByID", mock.Anything, int64(77)).Return(match.Match{
		ID:       77,
		Status:   match.StatusFinished,
		Winner:   match.WinnerHome,
		FullTime: match.Score{Home: &home, Away: &away},
		Referee:  &match.Referee{Name: "Felix Zwayer", Nationality: "Germany"},
	}, true, nil).Once()
	env.matches.On("GetByID", mock.Anything, int64(78)).Return(match.Match{}, false, nil).Once()

	rec := env.do(t, http.MethodGet, "/v1/matches/77", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope[matchDTO](t, rec)
	assert.Equal(t, "HOME_TEAM", body.Data.Score.Winner)
	require.NotNil(t, body.Data.Score.FullTime.Home)
	assert.Equal(t, 2, *body.Data.Score.FullTime.Home)
	require.NotNil(t, body.Data.Referee)
	assert.Equal(t, "Felix Zwayer", body.Data.Referee.Name)

	rec = env.do(t, http.MethodGet, "/v1/matches/78", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/matches/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTeamStats(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.stats.set(5, stats.RoleHome,
		stats.Result{Home: 2, Away: 1},
		stats.Result{Home: 0, Away: 0},
		stats.Result{Home: 3, Away: 3},
	)

	rec := env.do(t, http.MethodGet, "/v1/teams/5/stats?role=home&before=2025-04-01T00:00:00Z", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeEnvelope[teamStatsDTO](t, rec)
	assert.Equal(t, "home", body.Data.Role)
	assert.Equal(t, "2025-04-01T00:00:00Z", body.Data.Before)
	assert.Equal(t, windowDTO{
		TotalGames:         3,
		BothTeamsScored:    67,
		NotBothTeamsScored: 33,
		Over25:             67,
		Under25:            33,
		Wins:               33,
		Draws:              67,
		Losses:             0,
	}, body.Data.Stats)

	last := env.stats.lastQuery()
	require.NotNil(t, last.Before)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), *last.Before)
	assert.Equal(t, 20, last.Limit)
}

func TestGetTeamStats_DefaultsCutoffToNow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodGet, "/v1/teams/5/stats?role=away", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope[teamStatsDTO](t, rec)
	assert.Equal(t, "2025-05-01T12:00:00Z", body.Data.Before)
	assert.Equal(t, 0, body.Data.Stats.TotalGames)
}

func TestGetTeamStats_RejectsUnknownRole(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodGet, "/v1/teams/5/stats?role=neutral", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTeamHistory(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.stats.history = []match.Match{{ID: 3}, {ID: 2}}

	rec := env.do(t, http.MethodGet, "/v1/teams/9/history?location=away&type=over25", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeEnvelope[teamHistoryDTO](t, rec)
	assert.Equal(t, 2, body.Data.Count)
	assert.Equal(t, "over25", body.Data.Type)
	assert.Equal(t, int64(3), body.Data.Matches[0].ID)

	last := env.stats.lastQuery()
	assert.Equal(t, stats.RoleAway, last.Role)
	assert.Equal(t, stats.OutcomeOver25, last.Outcome)

	rec = env.do(t, http.MethodGet, "/v1/teams/9/history?location=away&type=corners", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogRoutes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.competitions.items = []competition.Competition{{ID: 2002, Name: "Bundesliga", Code: "BL1"}}
	env.competitions.overview = competition.Overview{Competitions: 1, Teams: 18, Matches: 306}

	rec := env.do(t, http.MethodGet, "/v1/competitions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeEnvelope[[]competitionDTO](t, rec)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "BL1", list.Data[0].Code)

	rec = env.do(t, http.MethodGet, "/v1/overview", "")
	require.Equal(t, http.StatusOK, rec.Code)
	overview := decodeEnvelope[overviewDTO](t, rec)
	assert.Equal(t, int64(306), overview.Data.Matches)

	env.competitions.err = fmt.Errorf("connection refused")
	rec = env.do(t, http.MethodGet, "/v1/overview", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestAskAssistant_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.llm.On("Complete", mock.Anything, assistant.SystemPrompt, "Bayern Spiele heute").
		Return(`{"intent":"find_matches","sql":"SELECT * FROM matches WHERE home_team_name ILIKE '%Bayern%'","explanation":"Bayern today"}`, nil).Once()
	env.runner.On("Run", mock.Anything, "SELECT * FROM matches WHERE home_team_name ILIKE '%Bayern%' LIMIT 50").
		Return([]match.Match{{ID: 1, HomeTeam: team.Team{ID: 5}, AwayTeam: team.Team{ID: 6}}}, nil).Once()

	rec := env.do(t, http.MethodPost, "/v1/assistant/query", `{"question":"Bayern Spiele heute"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeEnvelope[assistantReplyDTO](t, rec)
	assert.Equal(t, "matches", body.Data.Type)
	assert.Equal(t, "Bayern today", body.Data.Message)
	assert.Equal(t, 1, body.Data.TotalCount)
	assert.True(t, strings.HasSuffix(body.Data.SQL, "LIMIT 50"))
	assert.Equal(t, "find_matches", body.Data.Intent)
}

func TestAskAssistant_RejectsUnsafeSQLWithoutRunningIt(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"sql":"SELECT * FROM matches; DROP TABLE users;"}`, nil).Once()

	rec := env.do(t, http.MethodPost, "/v1/assistant/query", `{"question":"drop everything"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeEnvelope[assistantReplyDTO](t, rec)
	assert.Equal(t, "error", body.Data.Type)
	assert.NotEmpty(t, body.Data.Message)
	require.NotNil(t, body.Error)
	assert.Equal(t, "unsafeQuery", body.Error.Errors[0].Reason)
	env.runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestAskAssistant_TranslationFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("I am not sure.", nil).Once()

	rec := env.do(t, http.MethodPost, "/v1/assistant/query", `{"question":"hmm"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeEnvelope[assistantReplyDTO](t, rec)
	assert.Equal(t, "could not understand the question, please rephrase it", body.Data.Message)
}

func TestAskAssistant_NotConfigured(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.router = newTestRouter(env, nil, nil)

	rec := env.do(t, http.MethodPost, "/v1/assistant/query", `{"question":"matches today"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decodeEnvelope[assistantReplyDTO](t, rec)
	assert.Equal(t, "error", body.Data.Type)
	assert.Equal(t, "the AI service is not configured, please contact the administrator", body.Data.Message)
}

func TestAskAssistant_RejectsBadBody(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/v1/assistant/query", `{"question":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/assistant/query", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type stubStatsRepository struct {
	mu      sync.Mutex
	results map[string][]stats.Result
	history []match.Match
	queries []stats.Query
}

func (s *stubStatsRepository) set(teamID int64, role stats.Role, results ...stats.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[fmt.Sprintf("%d|%s", teamID, role)] = results
}

func (s *stubStatsRepository) lastQuery() stats.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		return stats.Query{}
	}
	return s.queries[len(s.queries)-1]
}

func (s *stubStatsRepository) RecentResults(_ context.Context, q stats.Query) ([]stats.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	return s.results[fmt.Sprintf("%d|%s", q.TeamID, q.Role)], nil
}

func (s *stubStatsRepository) History(_ context.Context, q stats.Query) ([]match.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	return s.history, nil
}

type stubCompetitionRepository struct {
	items    []competition.Competition
	overview competition.Overview
	err      error
}

func (s *stubCompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	return s.items, s.err
}

func (s *stubCompetitionRepository) Overview(_ context.Context) (competition.Overview, error) {
	return s.overview, s.err
}
