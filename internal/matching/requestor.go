package matching

import (
	"errors"
	"sync"

	"github.com/inma-labs/inma-matcher/internal/inma"

	"go.uber.org/zap"
)

// Status is the lifecycle state of the single outstanding match request.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

var (
	// ErrRequestInFlight rejects a trigger while another request is pending.
	ErrRequestInFlight = errors.New("a match request is already in flight")
	ErrNoSelection     = errors.New("no product is selected")
)

type matchClient interface {
	Match(productID string, limit int) (*inma.MatchResults, error)
}

// Requestor issues match requests and holds the state of the current
// request/response cycle. At most one request may be outstanding; the guard
// is enforced here so the invariant holds even when the trigger is invoked
// programmatically, not only through the prompt.
type Requestor struct {
	mu      sync.Mutex
	status  Status
	results *inma.MatchResults
	err     error

	client matchClient
	logger *zap.Logger
}

func NewRequestor(client matchClient, logger *zap.Logger) *Requestor {
	return &Requestor{
		status: StatusIdle,
		client: client,
		logger: logger,
	}
}

func (r *Requestor) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Results returns the results of the last settled request, or nil when no
// request succeeded yet.
func (r *Requestor) Results() *inma.MatchResults {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.results
}

func (r *Requestor) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Request issues a single match request for the product. A call made while
// another request is pending fails with ErrRequestInFlight and leaves the
// held state untouched. Failures are not retried; the caller may re-issue
// the same request once the previous one settled.
func (r *Requestor) Request(productID string, limit int) (*inma.MatchResults, error) {
	if productID == "" {
		return nil, ErrNoSelection
	}

	if limit <= 0 {
		limit = inma.DefaultMatchLimit
	}

	r.mu.Lock()
	if r.status == StatusPending {
		r.mu.Unlock()
		return nil, ErrRequestInFlight
	}

	// A new attempt discards whatever the previous one produced.
	r.status = StatusPending
	r.results = nil
	r.err = nil
	r.mu.Unlock()

	r.logger.Debug("requesting matches",
		zap.String("product_id", productID),
		zap.Int("limit", limit),
	)

	results, err := r.client.Match(productID, limit)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.status = StatusFailed
		r.err = err
		return nil, err
	}

	r.status = StatusSucceeded
	r.results = results

	r.logger.Debug("match request settled", zap.Int("count", results.Len()))

	return results, nil
}
