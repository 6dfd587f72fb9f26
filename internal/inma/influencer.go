package inma

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	InfluencersPath = "/influencers"

	DefaultInfluencersPage  = 1
	DefaultInfluencersLimit = 20
)

// InfluencerQuery narrows the influencer listing. Zero values fall back
// to the backend defaults.
type InfluencerQuery struct {
	Page     int
	Limit    int
	MinScore float64
	Category string
	Search   string
}

// InfluencerPage is one page of the influencer collection.
type InfluencerPage struct {
	Total int                 `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
	Items []*InfluencerRecord `json:"items"`
}

// InfluencerRecord is the full stored influencer document, unlike the
// trimmed Influencer embedded in match results.
type InfluencerRecord struct {
	ID          string   `json:"_id,omitempty"`
	Title       string   `json:"title,omitempty"`
	Email       string   `json:"email,omitempty"`
	Description string   `json:"description,omitempty"`
	Score       float64  `json:"inma_score,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Stats       struct {
		Subscribers int `json:"subscribers,omitempty"`
	} `json:"stats,omitempty"`
}

func (q *InfluencerQuery) values() url.Values {
	v := url.Values{}
	if q == nil {
		return v
	}

	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.MinScore > 0 {
		v.Set("min_score", strconv.FormatFloat(q.MinScore, 'f', -1, 64))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}

	return v
}

func (c *Client) GetInfluencers(q *InfluencerQuery) (*InfluencerPage, error) {
	var page *InfluencerPage
	if err := c.getJSON(InfluencersPath, q.values(), &page); err != nil {
		return nil, err
	}

	if page == nil {
		return nil, fmt.Errorf("empty payload from %s", InfluencersPath)
	}

	return page, nil
}

func (p *InfluencerPage) Len() int {
	return len(p.Items)
}
