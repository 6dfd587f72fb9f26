package inma

import "fmt"

const CampaignPath = "/send/influencers"

// CampaignRequest describes a bulk outreach send. Each target gets the
// subject suffixed with a unique tag so replies can be tracked.
type CampaignRequest struct {
	Subject         string   `json:"subject"`
	Body            string   `json:"body"`
	TagPrefix       string   `json:"tag_prefix"`
	StartIndex      int      `json:"start_index"`
	Limit           int      `json:"limit"`
	MinScore        *float64 `json:"min_inma_score,omitempty"`
	SortByScoreDesc bool     `json:"sort_by_score_desc"`
	DryRun          bool     `json:"dry_run"`
	DelayMs         int      `json:"delay_ms"`
	MaxFail         int      `json:"max_fail"`
}

type CampaignReport struct {
	TotalTargets int             `json:"total_targets"`
	Attempted    int             `json:"attempted"`
	Sent         int             `json:"sent"`
	Failed       int             `json:"failed"`
	Items        []*CampaignItem `json:"items"`
}

type CampaignItem struct {
	Email     string `json:"email"`
	Tag       string `json:"tag"`
	Status    string `json:"status"`
	MessageID string `json:"message_id,omitempty"`
	ThreadID  string `json:"threadId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SendCampaign submits the campaign to the backend, which selects targets by
// score and sends the emails. With DryRun set the backend only reports the
// targets and the tags it would use.
func (c *Client) SendCampaign(req *CampaignRequest) (*CampaignReport, error) {
	var report *CampaignReport
	if err := c.postJSON(CampaignPath, req, &report); err != nil {
		return nil, err
	}

	if report == nil {
		return nil, fmt.Errorf("empty payload from %s", CampaignPath)
	}

	return report, nil
}
