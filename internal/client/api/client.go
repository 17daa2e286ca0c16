package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Backend endpoints, relative to the base URL.
const (
	pathLogin            = "/complaintlogin/"
	pathAddComplaint     = "/addcomplaint/"
	pathAllComplaints    = "/allcomplaints/"
	pathComplaintDetails = "/complaintdetails/"
	pathUpdateComplaint  = "/updatecomplaint/"
)

// requestTimeout bounds every request issued by the client.
const requestTimeout = 10 * time.Second

// Client is the shared HTTP transport for the authenticator, the
// submission pipeline, and the complaint repository.
type Client struct {
	// BaseURL is the backend base URL, without a trailing slash.
	BaseURL string
	// HTTP performs the requests; its timeout is fixed at requestTimeout.
	HTTP *http.Client
	// Log receives request/response metadata at debug level. Form field
	// values are never logged.
	Log *zap.Logger
}

// New returns a Client for the backend at baseURL.
func New(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: requestTimeout},
		Log:     log,
	}
}

// do issues req and logs method, path, status and duration. Only metadata
// is logged: bodies carry personal data.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}
	c.Log.Debug("request done",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}
