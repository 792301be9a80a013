// Package demo serves sample reports with the markup a GoBI server emits,
// so the viewer can run without one. Tests use testify like the report
// engine whose helpers they share.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/five82/gobiview/internal/report"
)

// DefaultAddr is where the demo server listens unless configured otherwise.
const DefaultAddr = "127.0.0.1:8080"

// Config holds configuration for the demo server.
type Config struct {
	Addr   string
	Logger *slog.Logger
}

// Server serves the built-in reports.
type Server struct {
	addr    string
	logger  *slog.Logger
	reports map[string]*Report
}

// NewServer creates a demo server with the built-in datasets.
func NewServer(cfg Config) *Server {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		addr = DefaultAddr
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addr:    addr,
		logger:  logger,
		reports: Reports(),
	}
}

// Handler returns the router for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
	)
	r.Get("/", s.handleIndex)
	r.Get("/reports", s.handleIndex)
	r.Get("/report", s.handleReport)
	return r
}

// Serve listens until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		s.logger.Info("demo server listening", "addr", "http://"+s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Debug("shutting down demo server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	ids := make([]string, 0, len(s.reports))
	for id := range s.reports {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	list := make([]*Report, 0, len(ids))
	for _, id := range ids {
		list = append(list, s.reports[id])
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, list); err != nil {
		s.logger.Error("render index", "error", err)
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("id")
	if id == "" {
		http.Error(w, "Missing report ID", http.StatusBadRequest)
		return
	}
	rpt, ok := s.reports[id]
	if !ok {
		http.Error(w, "Report not found", http.StatusNotFound)
		return
	}

	rows := filterRows(rpt, q.Get("filter_col"), q.Get("filter_val"))
	sortRows(rpt, rows, report.ParseSortValues(q["sort"]))

	session := q.Get("session")
	if session == "" {
		session = uuid.NewString()
	}
	view := s.buildView(rpt, rows, session)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	name := "page"
	if r.Header.Get("HX-Request") == "true" {
		name = "table"
	}
	if err := pageTmpl.ExecuteTemplate(w, name, view); err != nil {
		s.logger.Error("render report", "report", id, "template", name, "error", err)
	}
}

func (s *Server) buildView(rpt *Report, rows []Record, session string) pageView {
	view := pageView{Report: rpt, Columns: rpt.Columns, SessionID: session}
	child := s.reports[rpt.Child]
	for _, rec := range rows {
		row := rowView{Cells: make([]cellView, 0, len(rpt.Columns))}
		for _, c := range rpt.Columns {
			row.Cells = append(row.Cells, cellView{Field: c.Field, Value: rec[c.Field], Hidden: c.Hidden})
		}
		if child != nil {
			row.Drill = drillLink(child.ID, rpt.ChildColumn, rec[rpt.ChildColumn])
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

func drillLink(id, column, value string) string {
	q := url.Values{}
	q.Set("id", id)
	q.Set("filter_col", column)
	q.Set("filter_val", value)
	return "/report?" + q.Encode()
}
