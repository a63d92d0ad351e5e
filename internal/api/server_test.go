package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rcliao/vocab-drill/internal/model"
	"github.com/rcliao/vocab-drill/internal/session"
	"github.com/rcliao/vocab-drill/internal/srs"
	"github.com/rcliao/vocab-drill/internal/store"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type testEnv struct {
	srv   *httptest.Server
	db    *store.SQLiteStore
	clock *testClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "vocab.db")
	db, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	words := []model.Word{
		{ID: "w1", Kanji: "猫", Kana: "ねこ", Type: "名词", Meaning: "猫"},
		{ID: "w2", Kanji: "雨", Kana: "あめ", Type: "名词", Meaning: "雨"},
		{ID: "w3", Kanji: "走る", Kana: "はしる", Type: "动词", Meaning: "跑"},
	}
	if err := db.ReplaceWords(context.Background(), words, true); err != nil {
		t.Fatal(err)
	}

	engine, err := srs.NewEngine(nil, srs.NoShuffle)
	if err != nil {
		t.Fatal(err)
	}
	clock := &testClock{now: t0}
	sess := session.New(db, engine, session.WithClock(clock.Now))

	s := New(sess, db, dbPath, nil)
	s.now = clock.Now

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, db: db, clock: clock}
}

func (e *testEnv) do(t *testing.T, method, path, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, e.srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("%s %s: content type %q", method, path, ct)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func cardIDs(cards []session.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func TestBatchRefreshAndCooldown(t *testing.T) {
	e := newTestEnv(t)

	var got batchResponse
	if code := e.do(t, "GET", "/api/v1/batch", "", &got); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(got.Cards) != 0 {
		t.Errorf("expected empty batch, got %v", got.Cards)
	}

	if code := e.do(t, "POST", "/api/v1/batch?count=2", "", &got); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if diff := cmp.Diff([]string{"w1", "w2"}, cardIDs(got.Cards)); diff != "" {
		t.Errorf("batch mismatch (-want +got):\n%s", diff)
	}
	if got.Cards[0].Record.ShowCount != 1 {
		t.Errorf("expected viewed record, got %+v", got.Cards[0].Record)
	}

	var again batchResponse
	if code := e.do(t, "POST", "/api/v1/batch?count=2", "", &again); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
	if again.Error == "" {
		t.Error("expected error message")
	}
	if diff := cmp.Diff(cardIDs(got.Cards), cardIDs(again.Cards)); diff != "" {
		t.Errorf("expected previous batch (-want +got):\n%s", diff)
	}

	e.clock.Set(t0.Add(time.Second))
	if code := e.do(t, "POST", "/api/v1/batch", "", &got); code != http.StatusOK {
		t.Fatalf("expected 200 after cooldown, got %d", code)
	}
	if len(got.Cards) != 3 {
		t.Errorf("expected default display count 3, got %d", len(got.Cards))
	}
}

func TestBatchBadCount(t *testing.T) {
	e := newTestEnv(t)
	for _, q := range []string{"abc", "-1", "6"} {
		var body map[string]string
		if code := e.do(t, "POST", "/api/v1/batch?count="+q, "", &body); code != http.StatusBadRequest {
			t.Errorf("count=%s: expected 400, got %d", q, code)
		}
		if body["error"] == "" {
			t.Errorf("count=%s: expected error body", q)
		}
	}
}

func TestWordActions(t *testing.T) {
	e := newTestEnv(t)

	var rec model.LearningRecord
	if code := e.do(t, "POST", "/api/v1/words/w2/master", "", &rec); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	want := model.LearningRecord{
		WordID:         "w2",
		NextReviewTime: t0.Add(30 * time.Minute).UnixMilli(),
		IsMastered:     true,
		ShowCount:      1,
	}
	if rec != want {
		t.Errorf("got %+v, want %+v", rec, want)
	}

	if code := e.do(t, "POST", "/api/v1/words/w1/favorite", "", &rec); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !rec.IsFavorite {
		t.Error("expected favorite")
	}

	var body map[string]string
	if code := e.do(t, "POST", "/api/v1/words/missing/master", "", &body); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}

	var rows []store.RecordRow
	if code := e.do(t, "GET", "/api/v1/records?favorites=true", "", &rows); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(rows) != 1 || rows[0].ID != "w1" {
		t.Errorf("expected only w1, got %+v", rows)
	}

	if code := e.do(t, "GET", "/api/v1/records?status=mastered&sort=original", "", &rows); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(rows) != 1 || rows[0].ID != "w2" {
		t.Errorf("expected only w2, got %+v", rows)
	}
}

func TestRecordsBadParams(t *testing.T) {
	e := newTestEnv(t)
	for _, q := range []string{"sort=random", "status=forgotten", "favorites=maybe", "limit=x"} {
		if code := e.do(t, "GET", "/api/v1/records?"+q, "", nil); code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, code)
		}
	}
}

func TestSearchAndStats(t *testing.T) {
	e := newTestEnv(t)

	var words []model.Word
	if code := e.do(t, "GET", "/api/v1/search?q=ねこ", "", &words); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(words) != 1 || words[0].ID != "w1" {
		t.Errorf("unexpected search result %+v", words)
	}
	if code := e.do(t, "GET", "/api/v1/search", "", nil); code != http.StatusBadRequest {
		t.Errorf("expected 400 without q, got %d", code)
	}

	e.do(t, "POST", "/api/v1/batch?count=1", "", nil)
	var st store.Stats
	if code := e.do(t, "GET", "/api/v1/stats", "", &st); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if st.Words != 3 || st.New != 2 || st.Learning != 1 || st.Records != 1 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestPreferences(t *testing.T) {
	e := newTestEnv(t)

	var prefs model.Preferences
	if code := e.do(t, "GET", "/api/v1/preferences", "", &prefs); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if diff := cmp.Diff(model.DefaultPreferences(), prefs); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	if code := e.do(t, "PUT", "/api/v1/preferences", `{"displayCount":2,"visibleFields":["kanji"]}`, &prefs); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if prefs.DisplayCount != 2 || len(prefs.VisibleFields) != 1 || prefs.RecordSortMode != model.SortShowCount {
		t.Errorf("unexpected merged prefs %+v", prefs)
	}

	for _, body := range []string{`{"displayCount":9}`, `{"visibleFields":["romaji"]}`, `{"colour":"red"}`, `not json`} {
		if code := e.do(t, "PUT", "/api/v1/preferences", body, nil); code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, code)
		}
	}

	var batch batchResponse
	e.do(t, "POST", "/api/v1/batch", "", &batch)
	if len(batch.Cards) != 2 {
		t.Errorf("expected stored display count 2, got %d cards", len(batch.Cards))
	}
}
