package http

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/generator"
	"expensetracker/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "expenses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewServer(":0", store, generator.NewWithSource(rand.NewSource(1)))
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(t)

	rr := get(srv, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Personal Expense Tracker")
	assert.Contains(t, rr.Body.String(), "Generate Expense Data")

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := get(srv, path)
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestIndexModeSelection(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		mode    string
		heading string
	}{
		{"generate", "Generate Expense Data"},
		{"view", "View Expense Data"},
		{"insights", "Spending Insights"},
		{"query", "Run Custom SQL Query"},
		{"predefined", "Predefined SQL Queries"},
		{"bogus", "Generate Expense Data"}, // unknown modes fall back
	}
	for _, tt := range tests {
		rr := get(srv, "/?mode="+tt.mode)
		require.Equal(t, http.StatusOK, rr.Code, tt.mode)
		assert.Contains(t, rr.Body.String(), tt.heading, tt.mode)
	}
}

func TestGenerateThenView(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(srv, "/generate", url.Values{"month": {"3"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Data for March generated and loaded into the database!")

	rr = get(srv, "/view?month=3")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "100 row(s)")
	assert.Contains(t, rr.Body.String(), "March")

	// A second batch accumulates rather than overwriting.
	rr = postForm(srv, "/generate", url.Values{"month": {"3"}})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(srv, "/view?month=3")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "200 row(s)")
}

func TestGenerateRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	rr := get(srv, "/generate")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	for _, month := range []string{"", "0", "13", "abc"} {
		rr := postForm(srv, "/generate", url.Values{"month": {month}})
		assert.Equal(t, http.StatusBadRequest, rr.Code, "month %q", month)
		assert.Contains(t, rr.Body.String(), "invalid month")
	}
}

func TestViewEmptyMonth(t *testing.T) {
	srv := newTestServer(t)

	rr := get(srv, "/view?month=6")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "0 row(s)")
}

func TestFreeTextQuery(t *testing.T) {
	srv := newTestServer(t)
	postForm(srv, "/generate", url.Values{"month": {"1"}})

	rr := postForm(srv, "/query", url.Values{"sql": {"SELECT COUNT(*) AS n FROM January"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<td>100</td>")
}

func TestFreeTextQueryErrorDoesNotCrashShell(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(srv, "/query", url.Values{"sql": {"SELEC * FROM January"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "An error occurred:")

	// The shell keeps serving after a failed query.
	rr = get(srv, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestFreeTextQueryEmpty(t *testing.T) {
	srv := newTestServer(t)
	rr := postForm(srv, "/query", url.Values{"sql": {"   "}})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestInsightsFailsWithoutExpensesTable(t *testing.T) {
	srv := newTestServer(t)

	// The insights query assumes a unified "expenses" table the schema
	// initializer never creates, so the database error is shown as-is.
	rr := get(srv, "/insights")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "An error occurred:")
	assert.Contains(t, rr.Body.String(), "no such table")
}

func TestPredefinedQueryAgainstMonthTable(t *testing.T) {
	srv := newTestServer(t)
	postForm(srv, "/generate", url.Values{"month": {"1"}})

	// The one catalog entry that targets a month table actually works.
	rr := postForm(srv, "/predefined", url.Values{"label": {"Category Breakdown for January"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Total_Spent")
	assert.NotContains(t, rr.Body.String(), "An error occurred:")
}

func TestPredefinedQueryMissingExpensesTable(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(srv, "/predefined", url.Values{"label": {"Cash vs Online Transactions"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "no such table")
}

func TestPredefinedUnknownLabel(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(srv, "/predefined", url.Values{"label": {"Made Up Report"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown query")
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)
	rr := get(srv, "/")
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
}
