package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tracker"
)

// Wednesday
var fixedNow = time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC)

type memSaver struct {
	saves int
	last  models.State
	err   error
}

func (m *memSaver) SaveState(state models.State) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.last = state
	return nil
}

func newTestServer(t *testing.T) (*Server, *tracker.Tracker, *memSaver) {
	t.Helper()
	tr := tracker.New(tracker.Options{
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	})
	saver := &memSaver{}
	return New(tr, saver), tr, saver
}

func doRequest(t *testing.T, s *Server, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := s.App().Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { response.Body.Close() })
	return response
}

func decode[T any](t *testing.T, response *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(response.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	return decode[map[string]string](t, response)["error"]
}

func seedHabit(t *testing.T, tr *tracker.Tracker, id string, days []int) {
	t.Helper()
	if _, err := tr.Add(models.Habit{ID: id, Title: "Habit " + id, Category: models.CategoryHealth,
		Frequency: models.FrequencyWeekly, TargetDays: days, GoalType: models.GoalBoolean}); err != nil {
		t.Fatalf("seed habit %s: %v", id, err)
	}
}

func TestCreateHabit(t *testing.T) {
	s, tr, saver := newTestServer(t)

	response := doRequest(t, s, http.MethodPost, "/api/habits",
		`{"id": "h1", "title": "Read", "category": "study", "frequency": "daily", "goalType": "boolean", "reminderTime": "20:00"}`)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}

	created := decode[models.Habit](t, response)
	if created.ID != "h1" || len(created.TargetDays) != 7 {
		t.Errorf("unexpected habit: %+v", created)
	}
	if len(tr.List()) != 1 {
		t.Errorf("tracker has %d habits, want 1", len(tr.List()))
	}
	if saver.saves != 1 || len(saver.last.Habits) != 1 {
		t.Errorf("expected one save with the new habit, got %d saves", saver.saves)
	}
}

func TestCreateHabitErrors(t *testing.T) {
	s, tr, saver := newTestServer(t)
	seedHabit(t, tr, "dup", []int{1})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"blank title", `{"title": "   ", "frequency": "daily"}`, http.StatusBadRequest},
		{"bad reminder", `{"title": "Run", "frequency": "daily", "reminderTime": "25:00"}`, http.StatusBadRequest},
		{"numeric without goal", `{"title": "Water", "frequency": "daily", "goalType": "numeric"}`, http.StatusBadRequest},
		{"duplicate id", `{"id": "dup", "title": "Again", "frequency": "daily"}`, http.StatusConflict},
		{"malformed json", `{"title": `, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := doRequest(t, s, http.MethodPost, "/api/habits", tt.body)
			if response.StatusCode != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, response.StatusCode)
			}
			if msg := readAPIError(t, response); msg == "" {
				t.Error("expected an error message")
			}
		})
	}

	if saver.saves != 0 {
		t.Errorf("failed requests must not save, got %d saves", saver.saves)
	}
}

func TestGetHabit(t *testing.T) {
	s, tr, _ := newTestServer(t)
	seedHabit(t, tr, "a", []int{1, 3})

	response := doRequest(t, s, http.MethodGet, "/api/habits/a", "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if got := decode[models.Habit](t, response); got.ID != "a" {
		t.Errorf("got habit %q", got.ID)
	}

	response = doRequest(t, s, http.MethodGet, "/api/habits/missing", "")
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", response.StatusCode)
	}
}

func TestListHabits(t *testing.T) {
	s, tr, _ := newTestServer(t)
	seedHabit(t, tr, "a", []int{1})
	seedHabit(t, tr, "b", []int{2})
	archived := true
	if _, err := tr.Update("b", models.HabitPatch{Archived: &archived}); err != nil {
		t.Fatal(err)
	}

	all := decode[[]models.Habit](t, doRequest(t, s, http.MethodGet, "/api/habits", ""))
	if len(all) != 2 || all[0].ID != "a" || all[1].ID != "b" {
		t.Errorf("list = %+v, want a then b", all)
	}

	active := decode[[]models.Habit](t, doRequest(t, s, http.MethodGet, "/api/habits?active=true", ""))
	if len(active) != 1 || active[0].ID != "a" {
		t.Errorf("active list = %+v, want only a", active)
	}
}

func TestUpdateHabit(t *testing.T) {
	s, tr, saver := newTestServer(t)
	seedHabit(t, tr, "a", []int{1})

	response := doRequest(t, s, http.MethodPatch, "/api/habits/a", `{"title": "Renamed", "targetDays": [2, 4]}`)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	got := decode[models.Habit](t, response)
	if got.Title != "Renamed" || len(got.TargetDays) != 2 || got.Category != models.CategoryHealth {
		t.Errorf("unexpected update result: %+v", got)
	}
	if saver.saves != 1 {
		t.Errorf("expected 1 save, got %d", saver.saves)
	}

	response = doRequest(t, s, http.MethodPatch, "/api/habits/missing", `{"title": "x"}`)
	if response.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", response.StatusCode)
	}
	response = doRequest(t, s, http.MethodPatch, "/api/habits/a", `{"category": "chores"}`)
	if response.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", response.StatusCode)
	}
}

func TestDeleteHabit(t *testing.T) {
	s, tr, saver := newTestServer(t)
	seedHabit(t, tr, "a", []int{1})

	for i := 0; i < 2; i++ {
		response := doRequest(t, s, http.MethodDelete, "/api/habits/a", "")
		if response.StatusCode != http.StatusNoContent {
			t.Fatalf("delete #%d: expected status 204, got %d", i, response.StatusCode)
		}
	}
	if len(tr.List()) != 0 {
		t.Error("habit was not deleted")
	}
	if saver.saves != 2 {
		t.Errorf("expected 2 saves, got %d", saver.saves)
	}
}

func TestToggleHabit(t *testing.T) {
	s, tr, _ := newTestServer(t)
	seedHabit(t, tr, "a", []int{3})

	response := doRequest(t, s, http.MethodPost, "/api/habits/a/toggle", "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	got := decode[toggleResponse](t, response)
	if got.Date != "2025-12-31" || !got.Completed {
		t.Errorf("toggle today = %+v", got)
	}

	got = decode[toggleResponse](t, doRequest(t, s, http.MethodPost, "/api/habits/a/toggle", `{"date": "2025-12-31"}`))
	if got.Completed {
		t.Error("second toggle should clear the completion")
	}
	if len(tr.Logs("a")) != 1 {
		t.Errorf("expected one log entry, got %d", len(tr.Logs("a")))
	}

	response = doRequest(t, s, http.MethodPost, "/api/habits/a/toggle", `{"date": "31/12/2025"}`)
	if response.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 for bad date, got %d", response.StatusCode)
	}
	response = doRequest(t, s, http.MethodPost, "/api/habits/missing/toggle", "")
	if response.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404 for unknown habit, got %d", response.StatusCode)
	}
}

func TestRouteParamsSurviveLaterRequests(t *testing.T) {
	s, tr, saver := newTestServer(t)
	seedHabit(t, tr, "habit-aaaa", []int{3})

	if response := doRequest(t, s, http.MethodPatch, "/api/habits/habit-aaaa", `{"title": "Stretch"}`); response.StatusCode != http.StatusOK {
		t.Fatalf("PATCH: expected status 200, got %d", response.StatusCode)
	}
	if response := doRequest(t, s, http.MethodPost, "/api/habits/habit-aaaa/toggle", ""); response.StatusCode != http.StatusOK {
		t.Fatalf("toggle: expected status 200, got %d", response.StatusCode)
	}
	for i := 0; i < 20; i++ {
		doRequest(t, s, http.MethodGet, "/api/habits/qqqqqqqqqq", "")
	}

	if !tr.IsCompleted("habit-aaaa", "2025-12-31") {
		t.Error("completion lost after later requests")
	}
	if _, err := tr.Get("habit-aaaa"); err != nil {
		t.Errorf("habit id changed after later requests: %v", err)
	}
	state := tr.State()
	if len(state.Logs) != 1 || len(state.Logs["habit-aaaa"]) != 1 {
		t.Errorf("unexpected log keys: %+v", state.Logs)
	}
	if entry := state.Logs["habit-aaaa"]; len(entry) == 1 && entry[0].HabitID != "habit-aaaa" {
		t.Errorf("entry habitId = %q", entry[0].HabitID)
	}
	if saver.saves != 2 {
		t.Errorf("expected 2 saves, got %d", saver.saves)
	}
}

func TestHabitStats(t *testing.T) {
	s, tr, _ := newTestServer(t)
	seedHabit(t, tr, "a", []int{0, 1, 2, 3, 4, 5, 6})
	for _, day := range []string{"2025-12-29", "2025-12-30", "2025-12-31"} {
		if _, err := tr.Toggle("a", day); err != nil {
			t.Fatal(err)
		}
	}

	response := doRequest(t, s, http.MethodGet, "/api/habits/a/stats", "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	got := decode[habitStatsResponse](t, response)
	want := models.HabitStats{CompletionRate: 43, CompletedDays: 3, TotalDays: 7}
	if got.HabitStats != want {
		t.Errorf("stats = %+v, want %+v", got.HabitStats, want)
	}
	if got.CurrentStreak != 3 || got.LongestStreak != 3 {
		t.Errorf("streaks = %d/%d, want 3/3", got.CurrentStreak, got.LongestStreak)
	}
	if len(got.Series) != 7 || got.Series[6] != 1 || got.Series[3] != 0 {
		t.Errorf("series = %v", got.Series)
	}

	got = decode[habitStatsResponse](t, doRequest(t, s, http.MethodGet, "/api/habits/a/stats?days=3", ""))
	if got.CompletionRate != 100 || len(got.Series) != 3 {
		t.Errorf("3-day stats = %+v", got)
	}

	response = doRequest(t, s, http.MethodGet, "/api/habits/missing/stats", "")
	if response.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", response.StatusCode)
	}
}

func TestToday(t *testing.T) {
	s, tr, _ := newTestServer(t)
	seedHabit(t, tr, "wed", []int{3})
	seedHabit(t, tr, "mon", []int{1})
	seedHabit(t, tr, "also-wed", []int{3})
	if _, err := tr.ToggleToday("wed"); err != nil {
		t.Fatal(err)
	}

	got := decode[todayResponse](t, doRequest(t, s, http.MethodGet, "/api/today", ""))
	if got.Date != "2025-12-31" || got.Progress != 50 {
		t.Errorf("today = %+v", got)
	}
	if len(got.Habits) != 2 || got.Habits[0].ID != "wed" || !got.Habits[0].Completed || got.Habits[1].Completed {
		t.Errorf("today habits = %+v", got.Habits)
	}
	if got.Habits[0].Streak != 1 {
		t.Errorf("streak = %d, want 1", got.Habits[0].Streak)
	}
}

func TestWeeklyStatsAndHeatmap(t *testing.T) {
	s, tr, _ := newTestServer(t)
	seedHabit(t, tr, "a", []int{3})
	if _, err := tr.ToggleToday("a"); err != nil {
		t.Fatal(err)
	}

	weekly := decode[models.WeeklyStats](t, doRequest(t, s, http.MethodGet, "/api/stats/weekly", ""))
	if weekly.SuccessRate != 100 || weekly.TotalStreak != 1 {
		t.Errorf("weekly = %+v", weekly)
	}

	cells := decode[[]models.HeatmapDay](t, doRequest(t, s, http.MethodGet, "/api/heatmap", ""))
	if len(cells) != 28 {
		t.Fatalf("default heatmap has %d cells, want 28", len(cells))
	}
	last := cells[len(cells)-1]
	if last.Date != "2025-12-31" || last.Intensity != 1 {
		t.Errorf("last cell = %+v", last)
	}

	cells = decode[[]models.HeatmapDay](t, doRequest(t, s, http.MethodGet, "/api/heatmap?days=7", ""))
	if len(cells) != 7 {
		t.Errorf("heatmap?days=7 has %d cells", len(cells))
	}
}

func TestExportImport(t *testing.T) {
	s, tr, saver := newTestServer(t)
	seedHabit(t, tr, "a", []int{3})
	if _, err := tr.ToggleToday("a"); err != nil {
		t.Fatal(err)
	}

	response := doRequest(t, s, http.MethodGet, "/api/export", "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatal(err)
	}
	exported := models.Export{}
	if err := json.Unmarshal(body, &exported); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if exported.ExportedAt != "2025-12-31T12:00:00.000Z" || len(exported.Habits) != 1 {
		t.Errorf("unexpected export: %+v", exported)
	}

	tr.ClearAll()
	response = doRequest(t, s, http.MethodPost, "/api/import", string(body))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if !tr.IsCompleted("a", "2025-12-31") {
		t.Error("import did not restore the completion")
	}
	if saver.saves != 1 {
		t.Errorf("expected 1 save, got %d", saver.saves)
	}

	for _, bad := range []string{`{"habits": []}`, `not json`, `{"habits": null, "logs": {}}`} {
		response = doRequest(t, s, http.MethodPost, "/api/import", bad)
		if response.StatusCode != http.StatusBadRequest {
			t.Errorf("import %q: expected status 400, got %d", bad, response.StatusCode)
		}
	}
	if len(tr.List()) != 1 {
		t.Error("failed imports must leave the state untouched")
	}
}

func TestSaveFailure(t *testing.T) {
	s, _, saver := newTestServer(t)
	saver.err = errors.New("disk full")

	response := doRequest(t, s, http.MethodPost, "/api/habits", `{"title": "Read", "frequency": "daily"}`)
	if response.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", response.StatusCode)
	}
	if msg := readAPIError(t, response); msg != "failed to save state" {
		t.Errorf("error = %q", msg)
	}
}

func TestHealthz(t *testing.T) {
	s, _, _ := newTestServer(t)
	if response := doRequest(t, s, http.MethodGet, "/healthz", ""); response.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", response.StatusCode)
	}
}
