package eikon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/lmed/internal/provider"
)

var timeseriesFields = []string{"OPEN", "HIGH", "LOW", "CLOSE", "VOLUME"}

// timeseriesRequest is the proxy request payload.
type timeseriesRequest struct {
	RIC       string   `json:"ric"`
	Fields    []string `json:"fields"`
	StartDate string   `json:"startdate"`
	EndDate   string   `json:"enddate"`
	Interval  string   `json:"interval"`
}

// timeseriesResponse is the proxy response payload. Numeric fields are
// pointers: the proxy emits null for bars without a value.
type timeseriesResponse struct {
	Rows  []timeseriesRow `json:"rows"`
	Error *proxyError     `json:"error,omitempty"`
}

type timeseriesRow struct {
	Timestamp string   `json:"timestamp"`
	Open      *float64 `json:"open"`
	High      *float64 `json:"high"`
	Low       *float64 `json:"low"`
	Close     *float64 `json:"close"`
	Volume    *int64   `json:"volume"`
}

type proxyError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// QueryTimeSeries fetches interval bars for a RIC over [start, end].
func (c *Client) QueryTimeSeries(ctx context.Context, ric string, start, end time.Time, interval provider.Interval) ([]provider.Bar, error) {
	payload := timeseriesRequest{
		RIC:       ric,
		Fields:    timeseriesFields,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Interval:  string(interval),
	}

	body, err := c.post(ctx, payload)
	if err != nil {
		return nil, err
	}

	var resp timeseriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, provider.Transient(fmt.Errorf("decode response: %w", err))
	}

	if resp.Error != nil {
		return nil, classifyProxyError(resp.Error)
	}

	if len(resp.Rows) == 0 {
		return nil, provider.ErrNoData
	}

	bars := make([]provider.Bar, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		bar, ok := parseRow(row)
		if !ok {
			continue
		}
		bars = append(bars, bar)
	}

	c.logger.WithFields(map[string]interface{}{
		"ric":   ric,
		"rows":  len(resp.Rows),
		"bars":  len(bars),
		"start": payload.StartDate,
		"end":   payload.EndDate,
	}).Debug("Fetched timeseries")

	return bars, nil
}

// QueryPointValue fetches the daily close for a RIC on one date.
func (c *Client) QueryPointValue(ctx context.Context, ric string, date time.Time) (decimal.Decimal, error) {
	dateStr := date.Format("2006-01-02")
	payload := timeseriesRequest{
		RIC:       ric,
		Fields:    []string{"CLOSE"},
		StartDate: dateStr,
		EndDate:   dateStr,
		Interval:  string(provider.IntervalDaily),
	}

	body, err := c.post(ctx, payload)
	if err != nil {
		return decimal.Decimal{}, err
	}

	var resp timeseriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return decimal.Decimal{}, provider.Transient(fmt.Errorf("decode response: %w", err))
	}

	if resp.Error != nil {
		return decimal.Decimal{}, classifyProxyError(resp.Error)
	}

	// Last row wins; null closes are as good as no data.
	for i := len(resp.Rows) - 1; i >= 0; i-- {
		if resp.Rows[i].Close != nil {
			return decimal.NewFromFloat(*resp.Rows[i].Close), nil
		}
	}
	return decimal.Decimal{}, provider.ErrNoData
}

// post sends the payload and maps transport/status failures into the
// provider taxonomy.
func (c *Client) post(ctx context.Context, payload timeseriesRequest) ([]byte, error) {
	url := c.baseURL + timeseriesPath

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tr-Applicationid", c.appKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and connection failures are worth retrying.
		return nil, provider.Transient(fmt.Errorf("HTTP request: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// The app key or session is bad; the rest of the batch cannot succeed.
		return nil, provider.Fatal(fmt.Errorf("proxy rejected session: status %d", resp.StatusCode))
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, provider.Transient(fmt.Errorf("proxy busy: status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, provider.Transient(fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.Transient(fmt.Errorf("read response body: %w", err))
	}
	return body, nil
}

// classifyProxyError maps an in-band proxy error payload onto the taxonomy.
func classifyProxyError(pe *proxyError) error {
	msg := strings.ToLower(pe.Message)
	switch {
	case strings.Contains(msg, "no data available"):
		return provider.ErrNoData
	case strings.Contains(msg, "invalid ric") || strings.Contains(msg, "unknown instrument"):
		return provider.ErrInvalidInstrument
	case strings.Contains(msg, "not authorized") || strings.Contains(msg, "application key"):
		return provider.Fatal(fmt.Errorf("proxy error %d: %s", pe.Code, pe.Message))
	default:
		return provider.Transient(fmt.Errorf("proxy error %d: %s", pe.Code, pe.Message))
	}
}

// parseRow converts one proxy row into a Bar. Rows without a usable close
// are dropped.
func parseRow(row timeseriesRow) (provider.Bar, bool) {
	if row.Close == nil {
		return provider.Bar{}, false
	}

	ts, err := time.Parse("2006-01-02T15:04:05", row.Timestamp)
	if err != nil {
		// Some proxy builds append an offset; accept RFC3339 too but keep
		// the wall-clock fields as-is.
		ts, err = time.Parse(time.RFC3339, row.Timestamp)
		if err != nil {
			return provider.Bar{}, false
		}
	}

	bar := provider.Bar{
		Timestamp: ts,
		Close:     decimal.NewFromFloat(*row.Close),
	}
	if row.Open != nil {
		bar.Open = decimal.NewFromFloat(*row.Open)
	}
	if row.High != nil {
		bar.High = decimal.NewFromFloat(*row.High)
	}
	if row.Low != nil {
		bar.Low = decimal.NewFromFloat(*row.Low)
	}
	if row.Volume != nil {
		bar.Volume = *row.Volume
	}
	return bar, true
}
