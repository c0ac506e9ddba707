// Package server exposes a cleaned table and its summary views over a JSON
// API for the dashboard. The server is a stateless consumer of the pipeline
// output: it only reads the table built at startup.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/cord-cli/internal/config"
	"github.com/sells-group/cord-cli/internal/model"
	"github.com/sells-group/cord-cli/internal/pipeline"
	"github.com/sells-group/cord-cli/internal/summary"
)

// Server serves one cleaning run's output.
type Server struct {
	table  model.CleanTable
	report *pipeline.Report
	cfg    config.ServerConfig
	sumCfg config.SummaryConfig
}

// New creates a Server over a completed pipeline result.
func New(result *pipeline.Result, cfg config.ServerConfig, sumCfg config.SummaryConfig) *Server {
	return &Server{
		table:  result.Table,
		report: result.Report,
		cfg:    cfg,
		sumCfg: sumCfg,
	}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/api/overview", s.handleOverview)
	r.Get("/api/records", s.handleRecords)
	r.Get("/api/report", s.handleReport)
	r.Route("/api/summary", func(r chi.Router) {
		r.Get("/years", s.handleYears)
		r.Get("/journals", s.handleJournals)
		r.Get("/sources", s.handleSources)
		r.Get("/words", s.handleWords)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	filtered := summary.Filter(s.table, filterFromQuery(r))
	writeJSON(w, summary.ComputeOverview(filtered))
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	filtered := summary.Filter(s.table, filterFromQuery(r))

	limit := s.cfg.MaxRecords
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, `{"error":"invalid limit"}`, http.StatusBadRequest)
			return
		}
		if n < limit || limit == 0 {
			limit = n
		}
	}

	records := filtered.Records
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	writeJSON(w, map[string]any{
		"total":   filtered.Rows(),
		"records": records,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.report.Summary())
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	filtered := summary.Filter(s.table, filterFromQuery(r))
	writeJSON(w, summary.PublicationsByYear(filtered, 0))
}

func (s *Server) handleJournals(w http.ResponseWriter, r *http.Request) {
	filtered := summary.Filter(s.table, filterFromQuery(r))
	writeJSON(w, summary.TopJournals(filtered, topN(r, s.sumCfg.TopJournals)))
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	filtered := summary.Filter(s.table, filterFromQuery(r))
	writeJSON(w, summary.SourceDistribution(filtered, topN(r, s.sumCfg.TopSources)))
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	filtered := summary.Filter(s.table, filterFromQuery(r))
	writeJSON(w, summary.TitleWordFrequencies(filtered, topN(r, s.sumCfg.TopWords)))
}

// filterFromQuery maps the dashboard filter controls onto FilterOptions:
// year_from, year_to, journal (repeatable), has_abstract.
func filterFromQuery(r *http.Request) summary.FilterOptions {
	q := r.URL.Query()
	opts := summary.FilterOptions{
		Journals: q["journal"],
	}
	if v := q.Get("year_from"); v != "" {
		opts.YearFrom, _ = strconv.Atoi(v)
	}
	if v := q.Get("year_to"); v != "" {
		opts.YearTo, _ = strconv.Atoi(v)
	}
	if v := q.Get("has_abstract"); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			opts.HasAbstract = &b
		}
	}
	return opts
}

func topN(r *http.Request, def int) int {
	if v := r.URL.Query().Get("n"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}
