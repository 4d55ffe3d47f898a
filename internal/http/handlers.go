package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/queries"
	"expensetracker/internal/storage"
)

// storeTimeout bounds every store call made on behalf of a request.
const storeTimeout = 7 * time.Second

// mode is one of the five mutually exclusive dashboard modes.
type mode struct {
	Key  string
	Name string
}

var modes = []mode{
	{Key: "generate", Name: "Generate Data"},
	{Key: "view", Name: "View Data"},
	{Key: "insights", Name: "Visualize Insights"},
	{Key: "query", Name: "Run SQL Query"},
	{Key: "predefined", Name: "Predefined SQL Queries"},
}

type monthOption struct {
	Num  int
	Name string
}

func monthOptions() []monthOption {
	opts := make([]monthOption, 0, 12)
	for m := 1; m <= 12; m++ {
		opts = append(opts, monthOption{Num: m, Name: core.MonthName(m)})
	}
	return opts
}

// tableView is a query result prepared for template rendering.
type tableView struct {
	Columns []string
	Rows    [][]string
	Count   int
}

// resultView is the payload of the result partial: a notice and/or table,
// optional charts, or a verbatim error message.
type resultView struct {
	Notice string
	Error  string
	Table  *tableView
	Bar    *barView
	Pie    *pieView
	Line   *lineView
}

func newTableView(res *storage.Result) *tableView {
	return &tableView{Columns: res.Columns, Rows: res.Rows, Count: len(res.Rows)}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	active := r.URL.Query().Get("mode")
	valid := false
	for _, m := range modes {
		if m.Key == active {
			valid = true
			break
		}
	}
	if !valid {
		active = "generate"
	}

	data := struct {
		Active string
		Modes  []mode
		Months []monthOption
		Labels []string
	}{
		Active: active,
		Modes:  modes,
		Months: monthOptions(),
		Labels: queries.Labels(),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleGenerate generates a batch of fake records for the selected month
// and appends them to that month's table.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderResult(w, r, http.StatusBadRequest, resultView{Error: "invalid form data"})
		return
	}

	month, err := parseMonth(r.Form.Get("month"))
	if err != nil {
		s.renderResult(w, r, http.StatusBadRequest, resultView{Error: err.Error()})
		return
	}

	records := s.gen.Generate(month)

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()
	if err := s.store.InsertBatch(ctx, month, records); err != nil {
		slog.ErrorContext(r.Context(), "Batch insert failed", "error", err, "month", month)
		s.renderResult(w, r, http.StatusInternalServerError, resultView{Error: "failed to load generated data"})
		return
	}

	name := core.MonthName(month)
	s.renderResult(w, r, http.StatusOK, resultView{
		Notice: "Data for " + name + " generated and loaded into the database!",
		Table:  previewTable(records, 5),
	})
}

// handleView renders every row of the selected month's table.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonth(r.URL.Query().Get("month"))
	if err != nil {
		s.renderResult(w, r, http.StatusBadRequest, resultView{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()
	res, err := s.store.ViewMonth(ctx, month)
	if err != nil {
		s.renderQueryError(w, r, err, "view month", "month", month)
		return
	}

	s.renderResult(w, r, http.StatusOK, resultView{Table: newTableView(res)})
}

// handleInsights runs the category-total insights query and charts it.
// The query assumes the unified "expenses" table; on a store holding only
// month tables it fails, and the database error is shown as-is.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()
	res, err := s.store.Query(ctx, queries.InsightsSQL)
	if err != nil {
		s.renderQueryError(w, r, err, "insights")
		return
	}

	s.renderResult(w, r, http.StatusOK, resultView{
		Table: newTableView(res),
		Bar:   buildBar(res),
		Pie:   buildPie(res),
	})
}

// handleQuery executes free-text SQL. Trusted input only: the text goes to
// the store unchanged, and failures surface the database error verbatim
// without crashing the shell.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderResult(w, r, http.StatusBadRequest, resultView{Error: "invalid form data"})
		return
	}

	query := strings.TrimSpace(r.Form.Get("sql"))
	if query == "" {
		s.renderResult(w, r, http.StatusUnprocessableEntity, resultView{Error: "enter a SQL query"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()
	res, err := s.store.Query(ctx, query)
	if err != nil {
		s.renderQueryError(w, r, err, "free-text query")
		return
	}

	s.renderResult(w, r, http.StatusOK, resultView{Table: newTableView(res)})
}

// handlePredefined runs a catalog report and, where the entry defines one,
// charts the result.
func (s *Server) handlePredefined(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderResult(w, r, http.StatusBadRequest, resultView{Error: "invalid form data"})
		return
	}

	label := r.Form.Get("label")
	entry, ok := queries.Lookup(label)
	if !ok {
		s.renderResult(w, r, http.StatusBadRequest, resultView{Error: "unknown query: " + label})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()
	res, err := s.store.Query(ctx, entry.SQL)
	if err != nil {
		s.renderQueryError(w, r, err, "predefined query", "label", label)
		return
	}

	view := resultView{Table: newTableView(res)}
	switch entry.Chart {
	case queries.ChartBar:
		view.Bar = buildBar(res)
	case queries.ChartPie:
		view.Pie = buildPie(res)
	case queries.ChartLine:
		view.Line = buildLine(res)
	}
	s.renderResult(w, r, http.StatusOK, view)
}

// renderQueryError shows a failed query's database error to the user.
// Anything other than a QueryError is unexpected and becomes a 500.
func (s *Server) renderQueryError(w http.ResponseWriter, r *http.Request, err error, op string, args ...any) {
	var qe *storage.QueryError
	if errors.As(err, &qe) {
		slog.WarnContext(r.Context(), "Query failed", append([]any{"op", op, "error", err}, args...)...)
		s.renderResult(w, r, http.StatusOK, resultView{Error: qe.Error()})
		return
	}
	slog.ErrorContext(r.Context(), "Store error", append([]any{"op", op, "error", err}, args...)...)
	s.renderResult(w, r, http.StatusInternalServerError, resultView{Error: err.Error()})
}

func (s *Server) renderResult(w http.ResponseWriter, r *http.Request, status int, view resultView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "result.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Result template execution failed", "error", err, "template", "result.html")
	}
}

func parseMonth(v string) (int, error) {
	m, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || !core.ValidMonth(m) {
		return 0, core.ErrInvalidMonth
	}
	return m, nil
}

// previewTable shows the first n generated records, column order matching
// the month tables.
func previewTable(records []core.Record, n int) *tableView {
	if n > len(records) {
		n = len(records)
	}
	t := &tableView{
		Columns: []string{"Date", "Category", "Payment_Mode", "Description", "Amount_Paid", "Cashback", "Month"},
		Count:   n,
	}
	for _, rec := range records[:n] {
		t.Rows = append(t.Rows, []string{
			rec.Date,
			rec.Category,
			rec.PaymentMode,
			rec.Description,
			strconv.FormatFloat(rec.AmountPaid, 'f', 2, 64),
			strconv.FormatFloat(rec.Cashback, 'f', 2, 64),
			rec.Month,
		})
	}
	return t
}
