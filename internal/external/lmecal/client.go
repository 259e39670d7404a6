// Package lmecal scrapes market holidays from an exchange calendar page.
// It is an optional holiday source; the configured holiday list always
// applies, and a scrape failure only narrows the set.
package lmecal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/lmed/pkg/httputil"
	"github.com/wonny/lmed/pkg/logger"
)

// dateLayouts covers the formats seen on exchange calendar pages.
var dateLayouts = []string{"2006-01-02", "02 January 2006", "2 January 2006"}

// Client fetches and parses the holiday calendar page.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
}

// NewClient creates a new holiday calendar client.
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "lmecal"),
	}
}

// FetchHolidays downloads the calendar page and extracts holiday dates from
// its table rows. Cells that do not parse as dates are skipped.
func (c *Client) FetchHolidays(ctx context.Context, url string) ([]time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	holidays := parseHolidayTable(doc)

	c.logger.WithFields(map[string]interface{}{
		"url":   url,
		"count": len(holidays),
	}).Debug("Fetched holiday calendar")

	return holidays, nil
}

// parseHolidayTable walks every table row and collects the first cell that
// parses as a date.
func parseHolidayTable(doc *goquery.Document) []time.Time {
	var holidays []time.Time
	seen := make(map[string]bool)

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		row.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
			text := strings.TrimSpace(cell.Text())
			if text == "" {
				return true
			}
			if d, ok := parseDate(text); ok {
				key := d.Format("2006-01-02")
				if !seen[key] {
					seen[key] = true
					holidays = append(holidays, d)
				}
				return false
			}
			return true
		})
	})

	return holidays
}

func parseDate(text string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, text); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
