package inma

import (
	"encoding/json"
	"os"
)

const (
	MatchPath = "/match"

	// DefaultMatchLimit bounds the result count when the caller does not
	// provide one.
	DefaultMatchLimit = 10
)

type matchQuery struct {
	ProductID string `json:"product_id"`
	Limit     int    `json:"limit"`
}

type MatchResults struct {
	Items []*MatchResult
}

// MatchResult is one ranked candidate as returned by the backend. The order
// of results is the backend's rank order and must be preserved.
type MatchResult struct {
	Influencer *Influencer   `json:"influencer,omitempty"`
	Score      float64       `json:"score,omitempty"`
	Details    *MatchDetails `json:"details,omitempty"`
}

// Influencer is a read-only projection embedded in each match result.
type Influencer struct {
	Title string `json:"title,omitempty"`
	Email string `json:"email,omitempty"`
	Stats struct {
		Subscribers int `json:"subscribers,omitempty"`
	} `json:"stats,omitempty"`
}

// MatchDetails carries the per-factor breakdown behind the score. All values
// are computed server-side and rendered as-is.
type MatchDetails struct {
	Industry        string  `json:"industry,omitempty"`
	ERScore         float64 `json:"er_score,omitempty"`
	KeywordOverlap  int     `json:"keyword_overlap,omitempty"`
	Similarity      float64 `json:"similarity,omitempty"`
	MatchedCategory bool    `json:"matched_category,omitempty"`
}

// Match asks the backend for ranked influencer candidates for the given
// product. The full result list arrives atomically in rank order.
func (c *Client) Match(productID string, limit int) (*MatchResults, error) {
	if limit <= 0 {
		limit = DefaultMatchLimit
	}

	var items []interface{}
	if err := c.postJSON(MatchPath, &matchQuery{ProductID: productID, Limit: limit}, &items); err != nil {
		return nil, err
	}

	var results []*MatchResult
	if err := decodeItems(items, &results); err != nil {
		return nil, err
	}

	return &MatchResults{
		Items: results,
	}, nil
}

func (m *MatchResults) Len() int {
	return len(m.Items)
}

func (m *MatchResults) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return "", err
	}
	return file.Name(), nil
}
