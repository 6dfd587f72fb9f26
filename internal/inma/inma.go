package inma

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	userAgent      = "inma-labs/inma-matcher"
	defaultTimeout = 10 * time.Second
	// The matching endpoint runs a vector search per call, so outbound
	// requests are paced client-side.
	requestsPerSecond = 5
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	limiter    *rate.Limiter
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
}

func New(ctx context.Context, logger *zap.Logger, baseURL string) *Client {
	return &Client{
		ctx:     ctx,
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:    logger,
		UserAgent: userAgent,
	}
}

// SetToken sets the bearer token attached to backend requests. Without a
// token requests are sent unauthenticated.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SetTimeout overrides the default timeout for backend requests.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.HTTPClient.Timeout = d
	}
}
