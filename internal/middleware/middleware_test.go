package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"dailythought/internal/services"
)

var secret = []byte("test-secret")

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRequireAuth(t *testing.T) {
	var gotID int
	h := NewAuthMiddleware(secret).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	future := time.Now().Add(time.Hour).Unix()
	cases := []struct {
		name   string
		header string
		status int
		userID int
	}{
		{"missing", "", http.StatusUnauthorized, 0},
		{"not bearer", "Basic abc", http.StatusUnauthorized, 0},
		{"garbage", "Bearer nope", http.StatusUnauthorized, 0},
		{"wrong key", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": 1, "exp": future}), http.StatusUnauthorized, 0},
		{"expired", "Bearer " + sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"sub": 1, "exp": time.Now().Add(-time.Hour).Unix()}), http.StatusUnauthorized, 0},
		{"no subject", "Bearer " + sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"exp": future}), http.StatusUnauthorized, 0},
		{"hs512 rejected", "Bearer " + sign(t, jwt.SigningMethodHS512, secret, jwt.MapClaims{"sub": 1}), http.StatusUnauthorized, 0},
		{"numeric sub", "Bearer " + sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"sub": 42, "exp": future}), http.StatusNoContent, 42},
		{"string sub", "Bearer " + sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"sub": "7"}), http.StatusNoContent, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotID = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.status, rec.Body.String())
			}
			if gotID != tc.userID {
				t.Errorf("user id = %d, want %d", gotID, tc.userID)
			}
			if tc.status == http.StatusUnauthorized && rec.Header().Get("Content-Type") != "application/json" {
				t.Errorf("content type = %q", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestMetricsUseRoutePattern(t *testing.T) {
	m := services.NewMetrics(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/api/diaries/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/diaries/"+id, nil))
	}
	got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/diaries/{id}", "404"))
	if got != 3 {
		t.Errorf("requests = %v, want 3", got)
	}
}

func TestZapRequestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := chi.NewRouter()
	r.Use(ZapRequestLogger(zap.New(core)))
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("logged %d lines, want 2", len(entries))
	}
	if entries[0].Level != zap.InfoLevel || entries[1].Level != zap.ErrorLevel {
		t.Errorf("levels = %s, %s", entries[0].Level, entries[1].Level)
	}
	if entries[1].ContextMap()["route"] != "/boom" {
		t.Errorf("route field = %v", entries[1].ContextMap()["route"])
	}
}
