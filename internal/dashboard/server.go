// internal/dashboard/server.go
// Package dashboard serves the capability dashboard: HTML pages, the JSON
// endpoints behind them and rendered chart images.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mwiater/capdash/internal/benchmarks"
	"github.com/mwiater/capdash/internal/logging"
	"github.com/mwiater/capdash/internal/store"
)

// Options configures a Server beyond its Snapshot.
type Options struct {
	DefaultSelection []string
	GraphsDir        string
	StaticDir        string
	Records          *store.Records
	Pages            *benchmarks.Registry
}

// Server routes dashboard requests.
type Server struct {
	snap     Snapshot
	opts     Options
	pages    *benchmarks.Registry
	defaults []string
	mux      *http.ServeMux
}

// ErrResp is the JSON error body.
type ErrResp struct {
	OK      bool     `json:"ok"`
	Error   string   `json:"error"`
	Unknown []string `json:"unknown,omitempty"`
}

// New builds a Server. Default selection entries missing from the dataset
// are dropped.
func New(snap Snapshot, opts Options) *Server {
	pages := opts.Pages
	if pages == nil {
		pages = benchmarks.DefaultRegistry()
	}
	pages = pages.WithDatasets(snap.Benchmarks)

	defaults, unknown := snap.Dataset.FilterKnown(opts.DefaultSelection)
	if len(unknown) > 0 {
		logging.LogEvent("dropping unknown default capabilities: %v", unknown)
	}
	if defaults == nil {
		defaults = []string{}
	}

	s := &Server{snap: snap, opts: opts, pages: pages, defaults: defaults, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.mux.HandleFunc("GET /{$}", s.handleOverviewPage)
	s.mux.HandleFunc("GET /pages/{slug}", s.handleBenchmarkPage)
	s.mux.HandleFunc("GET /api/overview", s.handleOverview)
	s.mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	s.mux.HandleFunc("POST /api/dashboard", s.handleDashboard)
	s.mux.HandleFunc("GET /api/capabilities", s.handleCapabilities)
	s.mux.HandleFunc("GET /api/figure/{file}", s.handleFigure)
	s.mux.HandleFunc("GET /api/records", s.handleRecords)
	s.mux.HandleFunc("GET /api/benchmarks", s.handleBenchmarks)
	if s.opts.StaticDir != "" {
		s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.opts.StaticDir))))
	}
}

// Handler returns the routed handler with request logging.
func (s *Server) Handler() http.Handler {
	return logRequests(s.mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.LogEvent("listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logging.LogEvent("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.LogRequest(r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any, maxBytes int64) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrResp{OK: false, Error: err.Error()})
}
