package inma

import "fmt"

const StatsPath = "/stats"

type Stats struct {
	TotalInfluencers int        `json:"total_influencers"`
	TotalProducts    int        `json:"total_products"`
	ActiveCampaigns  int        `json:"active_campaigns"`
	EmailsSent       int        `json:"emails_sent"`
	Segments         []*Segment `json:"segments"`
}

// Segment is one slice of the audience breakdown shown on the dashboard.
type Segment struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// GetStats returns the dashboard counters and top audience segments.
func (c *Client) GetStats() (*Stats, error) {
	var stats *Stats
	if err := c.getJSON(StatsPath, nil, &stats); err != nil {
		return nil, err
	}

	if stats == nil {
		return nil, fmt.Errorf("empty payload from %s", StatsPath)
	}

	return stats, nil
}
