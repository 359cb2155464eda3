package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"dailythought/internal/db"
	"dailythought/internal/models"
	"dailythought/internal/repository"
	"dailythought/internal/services"
)

var testSecret = []byte("handler-secret")

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	conn, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	reg := prometheus.NewRegistry()
	metrics := services.NewMetrics(reg)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))
	repo := repository.NewDiaryRepository(conn)
	enc, _ := services.NewEncryptionService("handler-test-key")
	moods := services.NewAnalyticsService(repo, 7, time.Minute, services.WithAnalyticsClock(clock))
	diaries := services.NewDiaryService(repo, enc,
		services.WithDiaryClock(clock), services.WithAnalytics(moods), services.WithDiaryMetrics(metrics))

	srv := httptest.NewServer(NewRouter(RouterConfig{
		JWTSecret: testSecret,
		Diaries:   diaries,
		Analytics: moods,
		Metrics:   metrics,
		Gatherer:  reg,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func token(t *testing.T, userID int) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func call(t *testing.T, srv *httptest.Server, userID int, method, path string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, srv.URL+path, rd)
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+token(t, userID))
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func TestDiaryCRUD(t *testing.T) {
	srv := newTestServer(t)

	status, body := call(t, srv, 1, http.MethodPost, "/api/diaries", models.NewEntry{Date: "2024-05-01", Body: "Today was good", Mood: models.MoodHappy, MoodIntensity: 4})
	if status != http.StatusCreated {
		t.Fatalf("create status = %d: %s", status, body)
	}
	var created models.DiaryEntry
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.Body != "Today was good" || created.OwnerID != 1 {
		t.Fatalf("created = %+v", created)
	}
	if !strings.Contains(string(body), `"moodIntensity":4`) {
		t.Errorf("wire format = %s", body)
	}

	status, body = call(t, srv, 1, http.MethodGet, "/api/diaries", nil)
	var list []models.DiaryEntry
	_ = json.Unmarshal(body, &list)
	if status != http.StatusOK || len(list) != 1 || list[0].Body != "Today was good" {
		t.Fatalf("list = %d %s", status, body)
	}

	status, body = call(t, srv, 1, http.MethodPut, "/api/diaries/"+created.ID, models.EntryChanges{Body: "Rewritten", Mood: models.MoodTired, MoodIntensity: 2})
	var updated models.DiaryEntry
	_ = json.Unmarshal(body, &updated)
	if status != http.StatusOK || updated.Body != "Rewritten" || updated.Mood != models.MoodTired || updated.Date != "2024-05-01" {
		t.Fatalf("update = %d %s", status, body)
	}

	if status, _ := call(t, srv, 2, http.MethodGet, "/api/diaries/"+created.ID, nil); status != http.StatusNotFound {
		t.Errorf("foreign get status = %d", status)
	}
	if status, _ := call(t, srv, 2, http.MethodDelete, "/api/diaries/"+created.ID, nil); status != http.StatusNotFound {
		t.Errorf("foreign delete status = %d", status)
	}

	if status, _ := call(t, srv, 1, http.MethodDelete, "/api/diaries/"+created.ID, nil); status != http.StatusNoContent {
		t.Errorf("delete status = %d", status)
	}
	status, body = call(t, srv, 1, http.MethodGet, "/api/diaries/"+created.ID, nil)
	if status != http.StatusNotFound || !strings.Contains(string(body), "no diary found") {
		t.Errorf("get after delete = %d %s", status, body)
	}
}

func TestValidationErrorsNameTheField(t *testing.T) {
	srv := newTestServer(t)
	cases := []struct {
		name  string
		body  any
		field string
	}{
		{"future", models.NewEntry{Date: "2030-01-01", Body: "x"}, "date"},
		{"empty body", models.NewEntry{Date: "2024-05-01"}, "body"},
		{"mood", models.NewEntry{Date: "2024-05-01", Body: "x", Mood: "meh"}, "mood"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := call(t, srv, 1, http.MethodPost, "/api/diaries", tc.body)
			if status != http.StatusBadRequest {
				t.Fatalf("status = %d", status)
			}
			var e errorBody
			_ = json.Unmarshal(body, &e)
			if e.Field != tc.field || e.Error == "" {
				t.Errorf("error body = %s", body)
			}
		})
	}

	status, _ := call(t, srv, 1, http.MethodPost, "/api/diaries", "not an object")
	if status != http.StatusBadRequest {
		t.Errorf("malformed body status = %d", status)
	}
}

func TestUnauthenticated(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/api/diaries", "/api/mood-analytics"} {
		status, body := call(t, srv, 0, http.MethodGet, path, nil)
		if status != http.StatusUnauthorized || !strings.Contains(string(body), `"error"`) {
			t.Errorf("%s = %d %s", path, status, body)
		}
	}
}

func TestMoodAnalytics(t *testing.T) {
	srv := newTestServer(t)
	for _, in := range []models.NewEntry{
		{Date: "2024-05-01", Body: "a", Mood: models.MoodHappy},
		{Date: "2024-05-02", Body: "b", Mood: models.MoodSad},
		{Date: "2024-05-03", Body: "c", Mood: models.MoodHappy},
	} {
		if status, body := call(t, srv, 1, http.MethodPost, "/api/diaries", in); status != http.StatusCreated {
			t.Fatalf("create = %d %s", status, body)
		}
	}

	status, body := call(t, srv, 1, http.MethodGet, "/api/mood-analytics?local_date=2024-05-03", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d %s", status, body)
	}
	var snap models.MoodAnalyticsSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.TotalEntries != 3 || snap.StreakDays != 3 || snap.MostCommonMood == nil || *snap.MostCommonMood != models.MoodHappy {
		t.Errorf("snapshot = %s", body)
	}
	if len(snap.MoodTrend) != 3 || snap.MoodTrend[0].Date != "2024-05-01" {
		t.Errorf("trend = %+v", snap.MoodTrend)
	}

	status, body = call(t, srv, 2, http.MethodGet, "/api/mood-analytics", nil)
	if status != http.StatusOK || !strings.Contains(string(body), `"totalEntries":0`) || strings.Contains(string(body), "mostCommonMood") {
		t.Errorf("empty snapshot = %d %s", status, body)
	}

	if status, _ := call(t, srv, 1, http.MethodGet, "/api/mood-analytics?local_date=yesterday", nil); status != http.StatusBadRequest {
		t.Errorf("bad local_date status = %d", status)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)
	status, body := call(t, srv, 0, http.MethodGet, "/healthz", nil)
	if status != http.StatusOK || !strings.Contains(string(body), `"ok"`) {
		t.Errorf("healthz = %d %s", status, body)
	}
	call(t, srv, 1, http.MethodPost, "/api/diaries", models.NewEntry{Date: "2024-05-01", Body: "x"})

	status, body = call(t, srv, 0, http.MethodGet, "/metrics", nil)
	if status != http.StatusOK {
		t.Fatalf("metrics status = %d", status)
	}
	for _, want := range []string{`dailythought_entry_writes_total{op="create"} 1`, `route="/api/diaries"`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
