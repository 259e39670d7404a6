package lmecal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/lmed/pkg/httputil"
	"github.com/wonny/lmed/pkg/logger"
)

const calendarPage = `
<html><body>
<h1>Market holidays</h1>
<table>
  <tr><th>Date</th><th>Holiday</th></tr>
  <tr><td>25 December 2025</td><td>Christmas Day</td></tr>
  <tr><td>26 December 2025</td><td>Boxing Day</td></tr>
  <tr><td>2026-01-01</td><td>New Year's Day</td></tr>
  <tr><td>n/a</td><td>footnote row</td></tr>
  <tr><td>25 December 2025</td><td>duplicate row</td></tr>
</table>
</body></html>`

func TestFetchHolidays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(calendarPage))
	}))
	defer srv.Close()

	log := logger.NewNop()
	client := NewClient(httputil.New(log, 5*time.Second).DisableRetry(), log)

	holidays, err := client.FetchHolidays(context.Background(), srv.URL)
	require.NoError(t, err)

	// Three distinct dates; the footnote and duplicate rows are dropped.
	require.Len(t, holidays, 3)
	assert.Equal(t, "2025-12-25", holidays[0].Format("2006-01-02"))
	assert.Equal(t, "2025-12-26", holidays[1].Format("2006-01-02"))
	assert.Equal(t, "2026-01-01", holidays[2].Format("2006-01-02"))
}

func TestFetchHolidaysServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	log := logger.NewNop()
	client := NewClient(httputil.New(log, 5*time.Second).DisableRetry(), log)

	_, err := client.FetchHolidays(context.Background(), srv.URL)
	assert.Error(t, err)
}
