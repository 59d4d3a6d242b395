package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/littlemath/internal/metrics"
	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/quiz"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func sampleProblem() *problem.MathProblem {
	return &problem.MathProblem{
		ID:          "p-1",
		Question:    "8 + 5 = ?",
		Options:     []string{"12", "13", "14", "15"},
		Answer:      "13",
		Explanation: "8 先凑成 10，再加 3，等于 13。",
	}
}

func newTestServer(t *testing.T, p problem.Provider, opts Options) *Server {
	t.Helper()
	srv, err := New(quiz.NewController(p), opts)
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *Server, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func stateOf(t *testing.T, env envelope) StateView {
	t.Helper()
	var v StateView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func currentState(t *testing.T, srv *Server) StateView {
	t.Helper()
	srv.Wait()
	rec, env := do(t, srv, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	return stateOf(t, env)
}

func fixed(p *problem.MathProblem) problem.Provider {
	return problem.ProviderFunc(func(context.Context, string) (*problem.MathProblem, error) {
		return p, nil
	})
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, fixed(sampleProblem()), Options{})
	rec, env := do(t, srv, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "success", env.Message)
}

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("closed") }

func TestHealth_DatabaseDown(t *testing.T) {
	srv := newTestServer(t, fixed(sampleProblem()), Options{DB: failingPinger{}})
	rec, env := do(t, srv, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "database unavailable", env.Message)
}

func TestCategories(t *testing.T) {
	srv := newTestServer(t, fixed(sampleProblem()), Options{})
	_, env := do(t, srv, http.MethodGet, "/api/categories", "")

	var cats []CategoryView
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	require.Len(t, cats, 5)
	assert.Equal(t, problem.CategoryAddition, cats[0].ID)
	assert.Equal(t, "20以内加法", cats[0].Name)
}

func TestInitialState(t *testing.T) {
	srv := newTestServer(t, fixed(sampleProblem()), Options{})
	v := currentState(t, srv)

	assert.Equal(t, "idle", v.Phase)
	assert.Nil(t, v.Problem)
	assert.Nil(t, v.Feedback)
	assert.Equal(t, quiz.Stats{}, v.Stats)
}

func TestSessionFlow(t *testing.T) {
	srv := newTestServer(t, fixed(sampleProblem()), Options{})

	rec, _ := do(t, srv, http.MethodPost, "/api/category", `{"category":"addition"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	v := currentState(t, srv)
	require.Equal(t, "ready", v.Phase)
	require.NotNil(t, v.Problem)
	assert.Equal(t, "8 + 5 = ?", v.Problem.Question)
	assert.Equal(t, problem.CategoryAddition, v.Problem.Category)
	assert.Empty(t, v.Problem.Answer, "answer hidden before feedback")
	assert.Empty(t, v.Problem.Explanation)

	_, env := do(t, srv, http.MethodPost, "/api/answer", `{"option":"12"}`)
	v = stateOf(t, env)
	assert.Equal(t, "answered", v.Phase)
	require.NotNil(t, v.Feedback)
	assert.False(t, v.Feedback.IsCorrect)
	assert.Equal(t, "12", v.Feedback.Selected)
	assert.Equal(t, "13", v.Problem.Answer)
	assert.Empty(t, v.Problem.Explanation)
	assert.Equal(t, quiz.Stats{TotalAttempts: 1}, v.Stats)

	// A second answer is ignored but still accepted.
	rec, env = do(t, srv, http.MethodPost, "/api/answer", `{"option":"13"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, quiz.Stats{TotalAttempts: 1}, stateOf(t, env).Stats)

	_, env = do(t, srv, http.MethodPost, "/api/explanation", "")
	v = stateOf(t, env)
	assert.True(t, v.ShowExplanation)
	assert.Equal(t, sampleProblem().Explanation, v.Problem.Explanation)

	do(t, srv, http.MethodPost, "/api/next", "")
	v = currentState(t, srv)
	assert.Equal(t, "ready", v.Phase)
	assert.Nil(t, v.Feedback)
	assert.False(t, v.ShowExplanation)

	_, env = do(t, srv, http.MethodPost, "/api/answer", `{"option":"13"}`)
	v = stateOf(t, env)
	assert.True(t, v.Feedback.IsCorrect)
	assert.Equal(t, quiz.Stats{Score: 10, CorrectAnswers: 1, TotalAttempts: 2}, v.Stats)
	assert.Equal(t, 50, v.Accuracy)

	_, env = do(t, srv, http.MethodPost, "/api/reset", "")
	v = stateOf(t, env)
	assert.Equal(t, "idle", v.Phase)
	assert.Equal(t, quiz.Stats{Score: 10, CorrectAnswers: 1, TotalAttempts: 2}, v.Stats)
}

func TestFailureAndRetry(t *testing.T) {
	var calls atomic.Int32
	p := problem.ProviderFunc(func(context.Context, string) (*problem.MathProblem, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("quota exceeded")
		}
		return sampleProblem(), nil
	})
	srv := newTestServer(t, p, Options{})

	do(t, srv, http.MethodPost, "/api/category", `{"category":"shapes"}`)
	v := currentState(t, srv)
	assert.Equal(t, "error", v.Phase)
	assert.Nil(t, v.Problem)
	assert.False(t, v.Loading)

	do(t, srv, http.MethodPost, "/api/retry", "")
	v = currentState(t, srv)
	assert.Equal(t, "ready", v.Phase)
	assert.Equal(t, int32(2), calls.Load())
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t, fixed(sampleProblem()), Options{})

	tests := []struct {
		path string
		body string
	}{
		{"/api/category", `{`},
		{"/api/category", `{}`},
		{"/api/category", `{"category":"algebra"}`},
		{"/api/answer", `not json`},
		{"/api/answer", `{"option":""}`},
	}
	for _, tt := range tests {
		rec, env := do(t, srv, http.MethodPost, tt.path, tt.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.body)
		assert.Equal(t, http.StatusBadRequest, env.Code, tt.body)
		assert.NotEmpty(t, env.Message, tt.body)
	}
	assert.Equal(t, "idle", currentState(t, srv).Phase)
}

func TestResetWhileLoadingDiscardsLateProblem(t *testing.T) {
	release := make(chan struct{})
	p := problem.ProviderFunc(func(context.Context, string) (*problem.MathProblem, error) {
		<-release
		return sampleProblem(), nil
	})
	srv := newTestServer(t, p, Options{})

	_, env := do(t, srv, http.MethodPost, "/api/category", `{"category":"logic"}`)
	assert.Equal(t, "loading", stateOf(t, env).Phase)

	_, env = do(t, srv, http.MethodPost, "/api/reset", "")
	assert.Equal(t, "idle", stateOf(t, env).Phase)

	close(release)
	v := currentState(t, srv)
	assert.Equal(t, "idle", v.Phase)
	assert.Nil(t, v.Problem)
}

func TestMetricsRoute(t *testing.T) {
	m := metrics.New()
	srv, err := New(quiz.NewController(fixed(sampleProblem()), quiz.WithObservers(m)), Options{Metrics: m})
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	do(t, srv, http.MethodPost, "/api/category", `{"category":"money"}`)
	srv.Wait()

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `littlemath_problem_fetch_total{category="money",outcome="success"} 1`)
	assert.Contains(t, body, `littlemath_http_requests_total{endpoint="/api/category",method="POST",status="200"} 1`)
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, fixed(sampleProblem()), Options{AllowedOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNew_InvalidOrigin(t *testing.T) {
	_, err := New(quiz.NewController(fixed(nil)), Options{AllowedOrigins: []string{"localhost:5173"}})
	assert.Error(t, err)
}
