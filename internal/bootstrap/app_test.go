package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracks-graphql/internal/infra/setup"
)

const appTestSecret = "app-test-secret"

func newTestApp(t *testing.T) *App {
	return newTestAppWith(t, func(*Config) {})
}

func newTestAppWith(t *testing.T, configure func(cfg *Config)) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := defaultConfig()
	cfg.Database = setup.DatabaseOptions{Driver: "sqlite", Name: ":memory:"}
	cfg.JWTSecret = appTestSecret
	cfg.PasswordCost = 4
	cfg.RateLimitMax = 1000
	configure(cfg)

	db, err := setup.InitDB(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, setup.MigrateDB(db))

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	app, err := newAppWithDeps(cfg, log, db, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return app
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func postGraphQL(t *testing.T, app *App, token, query string, vars map[string]interface{}) (int, gqlResponse) {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": vars})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)

	var resp gqlResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	var id float64
	require.NoError(t, json.Unmarshal([]byte(userID), &id))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": id,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(appTestSecret))
	require.NoError(t, err)
	return token
}

func TestApp_GraphQLOverHTTP(t *testing.T) {
	app := newTestApp(t)

	status, resp := postGraphQL(t, app, "", `mutation($u: String!) { createUser(username: $u, password: "pw", email: "a@example.com") { user { id } } }`,
		map[string]interface{}{"u": "alice"})
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, resp.Errors)
	var created struct {
		User struct{ ID string } `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["createUser"], &created))
	token := tokenFor(t, created.User.ID)

	_, resp = postGraphQL(t, app, "", `{ me { username } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "PERMISSION_DENIED", resp.Errors[0].Extensions["code"])
	assert.Equal(t, "Not logged in!", resp.Errors[0].Message)

	_, resp = postGraphQL(t, app, token, `{ me { username } }`, nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"username":"alice"}`, string(resp.Data["me"]))

	_, resp = postGraphQL(t, app, token, `mutation { createTrack(title: "Song A", description: "", url: "http://x") { track { title postedBy { username } } } }`, nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"track":{"title":"Song A","postedBy":{"username":"alice"}}}`, string(resp.Data["createTrack"]))

	status, _ = postGraphQL(t, app, "not-a-jwt", `{ me { username } }`, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestApp_GraphQLGetAndBadRequests(t *testing.T) {
	app := newTestApp(t)

	q := url.Values{}
	q.Set("query", `query($s: String) { allTracks(search: $s) { id } }`)
	q.Set("variables", `{"s":"x"}`)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"allTracks":[]}}`, w.Body.String())

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql?query=%7Bme%7Bid%7D%7D&variables=%5B", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(`{"variables":{}}`))
	req.Header.Set("Content-Type", "application/json")
	app.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApp_AmbientRoutes(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/graphql", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func pingFrom(app *App, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w.Code
}

func TestApp_RateLimitIgnoresForwardedForByDefault(t *testing.T) {
	app := newTestAppWith(t, func(cfg *Config) {
		cfg.RateLimitMax = 1
		cfg.RateLimitWindow = time.Hour
	})

	assert.Equal(t, http.StatusOK, pingFrom(app, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, pingFrom(app, "10.0.0.2"), "伪造的 X-Forwarded-For 不能绕过限流")
}

func TestApp_RateLimitHonoursTrustedProxy(t *testing.T) {
	app := newTestAppWith(t, func(cfg *Config) {
		cfg.RateLimitMax = 1
		cfg.RateLimitWindow = time.Hour
		// httptest 请求的 RemoteAddr 为 192.0.2.1
		cfg.TrustedProxies = []string{"192.0.2.1"}
	})

	assert.Equal(t, http.StatusOK, pingFrom(app, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, pingFrom(app, "10.0.0.2"))
	assert.Equal(t, http.StatusTooManyRequests, pingFrom(app, "10.0.0.2"))
}

func TestApp_RejectsInvalidTrustedProxy(t *testing.T) {
	cfg := defaultConfig()
	cfg.JWTSecret = appTestSecret
	cfg.TrustedProxies = []string{"not-an-ip"}
	db, err := setup.InitDB(setup.DatabaseOptions{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	_, err = newAppWithDeps(cfg, logrus.New(), db, nil)
	assert.Error(t, err)
}
