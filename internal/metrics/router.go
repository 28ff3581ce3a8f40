package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-wolf/internal/storage"
)

// ScoreSource is the part of the store the router reads.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

// RouterConfig contains the dependencies of the HTTP router.
type RouterConfig struct {
	// Scores is optional; without it /scores answers 404.
	Scores ScoreSource
	Logger *log.Logger
}

// NewRouter builds the metrics router. It starts no goroutines and opens
// no listeners, so tests can mount it on httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(requestLogger(cfg.Logger))
	}

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if cfg.Scores != nil {
		r.Get("/scores/{game}", func(w http.ResponseWriter, req *http.Request) {
			limit := 10
			if s := req.URL.Query().Get("limit"); s != "" {
				n, err := strconv.Atoi(s)
				if err != nil || n <= 0 || n > 100 {
					writeError(w, "limit must be 1..100", http.StatusBadRequest)
					return
				}
				limit = n
			}
			scores, err := cfg.Scores.TopScores(chi.URLParam(req, "game"), limit)
			if err != nil {
				writeError(w, "scores unavailable", http.StatusInternalServerError)
				return
			}
			writeJSON(w, toScoreRows(scores))
		})
	}

	return r
}

type scoreRow struct {
	Rank   int       `json:"rank"`
	Player string    `json:"player"`
	Map    string    `json:"map"`
	Score  int       `json:"score"`
	Won    bool      `json:"won"`
	At     time.Time `json:"at"`
}

func toScoreRows(entries []storage.ScoreEntry) []scoreRow {
	rows := make([]scoreRow, len(entries))
	for i, e := range entries {
		rows[i] = scoreRow{Rank: i + 1, Player: e.Player, Map: e.Map, Score: e.Score, Won: e.Won, At: e.CreatedAt}
	}
	return rows
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start))
		})
	}
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Serve runs handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("metrics server starting", "address", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
