// Package eikon talks to the local Eikon desktop proxy. All provider
// queries go through this client, which maps proxy failures into the
// provider error taxonomy.
package eikon

import (
	"time"

	"github.com/wonny/lmed/pkg/config"
	"github.com/wonny/lmed/pkg/httputil"
	"github.com/wonny/lmed/pkg/logger"
)

// timeseriesPath is the proxy's data endpoint.
const timeseriesPath = "/api/v1/data"

// Client handles communication with the Eikon proxy.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	appKey     string
}

// NewClient creates a new Eikon proxy client. Retries are owned by the
// acquisition scheduler, so the HTTP layer's own retry is disabled.
func NewClient(cfg config.EikonConfig, log *logger.Logger) *Client {
	httpClient := httputil.New(log, cfg.RequestTimeout).DisableRetry()
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "eikon"),
		baseURL:    cfg.BaseURL,
		appKey:     cfg.AppKey,
	}
}

// newTestClient builds a client against a test server. Used in tests.
func newTestClient(baseURL string, log *logger.Logger) *Client {
	return NewClient(config.EikonConfig{
		AppKey:         "test-key",
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
	}, log)
}
