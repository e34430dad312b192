package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/codeclass/internal/auth"
	"github.com/sakif/codeclass/internal/catalog"
	"github.com/sakif/codeclass/internal/chat"
	"github.com/sakif/codeclass/internal/config"
	"github.com/sakif/codeclass/internal/model"
	"github.com/sakif/codeclass/internal/presenter"
	"github.com/sakif/codeclass/internal/server"
)

const (
	testSecret = "test-secret-at-least-16-chars"
	testIssuer = "codeclass-test"
)

type fakeCompleter struct{ reply string }

func (f fakeCompleter) Complete(context.Context, string) (string, error) {
	return f.reply, nil
}

func testConfig() *config.Config {
	return &config.Config{
		DBPath:               ":memory:",
		JWTSecret:            testSecret,
		JWTIssuer:            testIssuer,
		ExecuteMaxConcurrent: 4,
		ChatRatePerMinute:    10,
		ChatBurst:            3,
	}
}

func newTestServer(t *testing.T, cfg *config.Config, completer chat.Completer) http.Handler {
	t.Helper()

	cat, err := catalog.Load()
	require.NoError(t, err)

	s, err := server.New(cfg, server.Deps{
		Catalog:   cat,
		Completer: completer,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s.Handler()
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	ts, err := auth.NewTokenService(testSecret, testIssuer)
	require.NoError(t, err)
	tok, err := ts.Generate(userID)
	require.NoError(t, err)
	return tok
}

// do sends a request and returns the recorder. token may be empty.
func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), rr.Body.String())
	return v
}

func TestServer_HealthAndExecute(t *testing.T) {
	h := newTestServer(t, testConfig(), nil)

	rr := do(t, h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Content-Type"))

	rr = do(t, h, http.MethodPost, "/api/execute", "",
		`{"language":"python","code":"# greet\nprint(input())","stdin":"Mina"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	v := decode[presenter.View](t, rr)
	assert.Equal(t, "Using input: Mina\nMina", v.Output)
	assert.Equal(t, 2, v.LineCount)
	assert.Equal(t, presenter.StatusSuccess, v.Status)

	rr = do(t, h, http.MethodPost, "/api/execute", "", `{"language":"web","code":"<h1>hi</h1>"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/languages", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"web"`)
}

func TestServer_Catalog(t *testing.T) {
	h := newTestServer(t, testConfig(), nil)

	rr := do(t, h, http.MethodGet, "/api/courses?category=academics", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	courses := decode[[]catalog.Course](t, rr)
	require.Len(t, courses, 2)
	for _, c := range courses {
		assert.Equal(t, "academics", c.Category)
	}

	rr = do(t, h, http.MethodGet, "/api/courses/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/curriculum?class=10", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]catalog.Module](t, rr), 2)

	rr = do(t, h, http.MethodGet, "/api/curriculum/class-9-computer-applications", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "9", decode[catalog.Module](t, rr).Class)

	rr = do(t, h, http.MethodGet, "/api/resources?subject=mathematics", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]catalog.Resource](t, rr), 2)
}

func TestServer_Reviews(t *testing.T) {
	h := newTestServer(t, testConfig(), nil)

	rr := do(t, h, http.MethodPost, "/api/courses/python-basics/reviews", "", `{"rating":5}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/courses/python-basics/reviews", tokenFor(t, "ana"), `{"rating":5,"comment":"great"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = do(t, h, http.MethodPost, "/api/courses/python-basics/reviews", tokenFor(t, "bo"), `{"rating":3}`)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = do(t, h, http.MethodPost, "/api/courses/python-basics/reviews", tokenFor(t, "bo"), `{"rating":9}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/courses/python-basics/reviews", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]model.Review](t, rr), 2)

	rr = do(t, h, http.MethodGet, "/api/courses/python-basics", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var detail struct {
		ID     string              `json:"id"`
		Rating model.RatingSummary `json:"rating"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&detail))
	assert.Equal(t, "python-basics", detail.ID)
	assert.Equal(t, 2, detail.Rating.Count)
	assert.InDelta(t, 4.0, detail.Rating.Average, 0.001)
}

func TestServer_LearningFlow(t *testing.T) {
	h := newTestServer(t, testConfig(), nil)
	tok := tokenFor(t, "ana")

	rr := do(t, h, http.MethodGet, "/api/me/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/me/profile", tok, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodPut, "/api/me/profile", tok, `{"displayName":"Ana","studentClass":"9"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Ana", decode[model.Profile](t, rr).DisplayName)

	rr = do(t, h, http.MethodPost, "/api/me/enrollments", tok, `{"courseId":"python-basics"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = do(t, h, http.MethodPost, "/api/me/enrollments", tok, `{"courseId":"python-basics"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	rr = do(t, h, http.MethodPost, "/api/me/enrollments", tok, `{"courseId":"cooking"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/me/certificates", tok, `{"courseId":"python-basics"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "not finished yet")

	rr = do(t, h, http.MethodPut, "/api/me/enrollments/python-basics", tok, `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = do(t, h, http.MethodPut, "/api/me/enrollments/python-basics", tok, `{"progress":100}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 100, decode[model.Enrollment](t, rr).Progress)

	rr = do(t, h, http.MethodPost, "/api/me/certificates", tok, `{"courseId":"python-basics"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	cert := decode[model.Certificate](t, rr)
	assert.True(t, strings.HasPrefix(cert.Number, "CC-"))

	rr = do(t, h, http.MethodPost, "/api/me/certificates", tok, `{"courseId":"python-basics"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/certificates/"+strings.ToLower(cert.Number), "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ana", decode[model.Certificate](t, rr).UserID)

	rr = do(t, h, http.MethodGet, "/api/me/enrollments", tok, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]model.Enrollment](t, rr), 1)

	rr = do(t, h, http.MethodGet, "/api/me/certificates", tok, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]model.Certificate](t, rr), 1)
}

func TestServer_Snippets(t *testing.T) {
	h := newTestServer(t, testConfig(), nil)
	owner, other := tokenFor(t, "ana"), tokenFor(t, "bo")

	body := `{"name":"Hello","language":"python","code":"print('hi')"}`

	rr := do(t, h, http.MethodPost, "/api/snippets", "", body)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/snippets", owner, body)
	require.Equal(t, http.StatusCreated, rr.Code)
	snip := decode[model.Snippet](t, rr)
	assert.Equal(t, "ana", snip.UserID)

	rr = do(t, h, http.MethodGet, "/api/snippets/"+snip.ID, "", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/snippets/"+snip.ID+"/run", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hi", decode[presenter.View](t, rr).Output)

	rr = do(t, h, http.MethodPut, "/api/snippets/"+snip.ID, other, body)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/snippets?mine=true", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/snippets?mine=true", other, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[[]model.Snippet](t, rr))

	rr = do(t, h, http.MethodDelete, "/api/snippets/"+snip.ID, other, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, h, http.MethodDelete, "/api/snippets/"+snip.ID, owner, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/snippets/"+snip.ID, "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_Chat(t *testing.T) {
	h := newTestServer(t, testConfig(), fakeCompleter{reply: "A loop repeats code."})

	for i := 0; i < 3; i++ {
		rr := do(t, h, http.MethodPost, "/api/chat", "", `{"message":"what is a loop?"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "A loop repeats code.", decode[chat.Reply](t, rr).Response)
	}

	rr := do(t, h, http.MethodPost, "/api/chat", "", `{"message":"and again?"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))
}

func TestServer_FeaturesDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""
	h := newTestServer(t, cfg, nil)

	rr := do(t, h, http.MethodPost, "/api/chat", "", `{"message":"hi"}`)
	assert.Equal(t, http.StatusNotImplemented, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/me/profile", tokenFor(t, "ana"), "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/snippets", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNew_RequiresCatalog(t *testing.T) {
	_, err := server.New(testConfig(), server.Deps{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	assert.Error(t, err)
}
