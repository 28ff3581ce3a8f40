package metrics

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/tui-wolf/internal/storage"
)

type fakeScores struct {
	entries []storage.ScoreEntry
	err     error
	game    string
	limit   int
}

func (f *fakeScores) TopScores(gameID string, limit int) ([]storage.ScoreEntry, error) {
	f.game, f.limit = gameID, limit
	return f.entries, f.err
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestRouterHealthAndMetrics(t *testing.T) {
	ts := httptest.NewServer(NewRouter(RouterConfig{}))
	defer ts.Close()

	if code, body := get(t, ts.URL+"/healthz"); code != http.StatusOK || body != "OK" {
		t.Errorf("/healthz = %d %q", code, body)
	}

	RecordTick(2*time.Millisecond, 3)
	code, body := get(t, ts.URL+"/metrics")
	if code != http.StatusOK {
		t.Fatalf("/metrics status = %d", code)
	}
	for _, name := range []string{"wolf_tick_duration_seconds", "wolf_tics_total", "wolf_live_actors"} {
		if !strings.Contains(body, name) {
			t.Errorf("/metrics does not expose %s", name)
		}
	}

	if code, _ := get(t, ts.URL+"/scores/wolf"); code != http.StatusNotFound {
		t.Errorf("/scores without a source = %d, expected 404", code)
	}
}

func TestRouterScores(t *testing.T) {
	src := &fakeScores{entries: []storage.ScoreEntry{
		{Player: "bj", Map: "E1M9", Score: 900, Won: true},
		{Player: "hans", Map: "E1M1", Score: 100},
	}}
	ts := httptest.NewServer(NewRouter(RouterConfig{Scores: src}))
	defer ts.Close()

	code, body := get(t, ts.URL+"/scores/wolf?limit=5")
	if code != http.StatusOK {
		t.Fatalf("/scores status = %d body %s", code, body)
	}
	if src.game != "wolf" || src.limit != 5 {
		t.Errorf("TopScores called with %q %d", src.game, src.limit)
	}
	var rows []scoreRow
	if err := json.Unmarshal([]byte(body), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 || rows[0].Rank != 1 || rows[0].Player != "bj" || !rows[0].Won || rows[1].Rank != 2 {
		t.Errorf("rows = %+v", rows)
	}

	if code, _ := get(t, ts.URL+"/scores/wolf?limit=abc"); code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, expected 400", code)
	}

	src.err = errors.New("db gone")
	if code, _ := get(t, ts.URL+"/scores/wolf"); code != http.StatusInternalServerError {
		t.Errorf("store error status = %d, expected 500", code)
	}
}

func TestWorldGaugeMovesByDifference(t *testing.T) {
	base := testutil.ToFloat64(liveActors)
	baseDoors := testutil.ToFloat64(openDoors)

	var a, b WorldGauge
	a.Update(10, 2)
	b.Update(5, 1)
	if got := testutil.ToFloat64(liveActors) - base; got != 15 {
		t.Errorf("live actors = %v, expected 15", got)
	}

	a.Update(7, 0)
	if got := testutil.ToFloat64(liveActors) - base; got != 12 {
		t.Errorf("live actors after update = %v, expected 12", got)
	}
	if got := testutil.ToFloat64(openDoors) - baseDoors; got != 1 {
		t.Errorf("open doors = %v, expected 1", got)
	}

	a.Release()
	b.Release()
	if got := testutil.ToFloat64(liveActors) - base; got != 0 {
		t.Errorf("live actors after release = %v, expected 0", got)
	}
}

func TestRecordLevelFinishedCountsDeaths(t *testing.T) {
	before := testutil.ToFloat64(playerDeaths)
	RecordLevelFinished("complete")
	RecordLevelFinished("dead")
	if got := testutil.ToFloat64(playerDeaths) - before; got != 1 {
		t.Errorf("player deaths = %v, expected 1", got)
	}
	if got := testutil.ToFloat64(levelsFinished.WithLabelValues("complete")); got < 1 {
		t.Errorf("complete levels = %v", got)
	}
}

func TestRecordSave(t *testing.T) {
	RecordSave("save", nil)
	RecordSave("load", errors.New("corrupt"))
	if got := testutil.ToFloat64(saveOps.WithLabelValues("save", "ok")); got < 1 {
		t.Errorf("save ok = %v", got)
	}
	if got := testutil.ToFloat64(saveOps.WithLabelValues("load", "error")); got < 1 {
		t.Errorf("load error = %v", got)
	}
}
