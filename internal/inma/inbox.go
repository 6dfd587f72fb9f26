package inma

import "fmt"

const InboxPath = "/poll"

// PollRequest filters the reply inbox. Tag narrows results to a single
// campaign tag, Query overrides the filter entirely with a raw search query.
type PollRequest struct {
	Tag           string `json:"tag,omitempty"`
	Query         string `json:"query,omitempty"`
	NewerThanDays int    `json:"newer_than_days"`
	MaxResults    int    `json:"max_results"`
	MarkRead      bool   `json:"mark_read"`
}

type Messages struct {
	Items []*Message `json:"messages"`
}

type Message struct {
	ID        string `json:"id"`
	ThreadID  string `json:"threadId"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Snippet   string `json:"snippet"`
	Body      string `json:"body"`
}

// Poll fetches reply messages from the outreach inbox.
func (c *Client) Poll(req *PollRequest) (*Messages, error) {
	var messages *Messages
	if err := c.postJSON(InboxPath, req, &messages); err != nil {
		return nil, err
	}

	if messages == nil {
		return nil, fmt.Errorf("empty payload from %s", InboxPath)
	}

	return messages, nil
}

func (m *Messages) Len() int {
	return len(m.Items)
}
