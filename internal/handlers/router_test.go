package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hackhub/internal/auth"
	"hackhub/internal/handlers/testutils"
	"hackhub/models"

	"github.com/stretchr/testify/require"
)

func TestRouterPendingRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	f.store.add(models.Hackathon{ID: "p", Title: "Pending", Status: models.StatusPending})
	router := f.router()

	expired, err := auth.NewTokens(jwtSecret, "hackhub", -time.Minute).Sign(auth.Session{UserID: "u1", Role: auth.RoleAdmin})
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"expired", expired, http.StatusUnauthorized},
		{"wrong secret", mustSign(t, auth.NewTokens("other", "hackhub", time.Hour), auth.RoleAdmin), http.StatusUnauthorized},
		{"user", f.token(t, "user"), http.StatusForbidden},
		{"admin", f.token(t, auth.RoleAdmin), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/hackathons/pending", nil)
			if tc.token != "" {
				testutils.WithBearer(req, tc.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			require.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRouterModerationFlow(t *testing.T) {
	f := newFixture(t)
	router := f.router()
	admin := f.token(t, auth.RoleAdmin)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/hackathons/submit", strings.NewReader(submitBody)))
	require.Equal(t, http.StatusCreated, w.Code)
	id := f.store.items[0].ID

	// до одобрения хакатон скрыт
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/hackathons/"+id, nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/hackathons/"+id+"/approve", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, testutils.WithBearer(httptest.NewRequest(http.MethodPut, "/api/hackathons/"+id+"/approve", nil), admin))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/hackathons/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, testutils.WithBearer(httptest.NewRequest(http.MethodPut, "/api/hackathons/"+id+"/reject", nil), admin))
	require.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/hackathons", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Hackathon
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, id, list[0].ID)
}

func TestRouterLogin(t *testing.T) {
	f := newFixture(t)
	router := f.router()

	cases := []struct {
		name string
		body string
		want int
	}{
		{"ok", `{"email": "Admin@HackHub.dev", "password": "pass123"}`, http.StatusOK},
		{"wrong password", `{"email": "admin@hackhub.dev", "password": "nope"}`, http.StatusUnauthorized},
		{"unknown email", `{"email": "x@hackhub.dev", "password": "pass123"}`, http.StatusUnauthorized},
		{"missing fields", `{"email": ""}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tc.body)))
			require.Equal(t, tc.want, w.Code)
		})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email": "admin@hackhub.dev", "password": "pass123"}`)))
	var resp struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, auth.RoleAdmin, resp.Role)

	// выданный токен открывает админские маршруты
	w = httptest.NewRecorder()
	router.ServeHTTP(w, testutils.WithBearer(httptest.NewRequest(http.MethodGet, "/api/hackathons/pending", nil), resp.Token))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouterCORSAndPing(t *testing.T) {
	f := newFixture(t)
	router := f.router()

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterSubmitRateLimit(t *testing.T) {
	f := newFixture(t)
	router := f.handlerRouter(2)

	codes := []int{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/hackathons/submit", strings.NewReader("{")))
		codes = append(codes, w.Code)
	}
	require.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)
}

func TestRouterRateLimitPerRoute(t *testing.T) {
	f := newFixture(t)
	router := f.handlerRouter(2)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email": "admin@hackhub.dev", "password": "wrong"}`)))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email": "admin@hackhub.dev", "password": "wrong"}`)))
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	// исчерпанный лимит входа не мешает подавать заявки с того же IP
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/hackathons/submit", strings.NewReader(submitBody)))
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestRouterReady(t *testing.T) {
	f := newFixture(t)
	w := httptest.NewRecorder()
	f.router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ready", w.Body.String())
}

func mustSign(t *testing.T, tokens *auth.Tokens, role string) string {
	t.Helper()
	tok, err := tokens.Sign(auth.Session{UserID: "u1", Role: role})
	require.NoError(t, err)
	return tok
}
