package inma

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(context.Background(), zap.NewNop(), server.URL), server
}

func TestGetProducts(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, ProductsPath, r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"_id": "p1", "title": "Widget", "brand": "Acme", "price": "12,000"},
			{"_id": "p2", "title": "Gadget", "brand": "Globex", "price": "8,500"},
		})
	}))

	products, err := client.GetProducts()

	require.NoError(t, err)
	require.Equal(t, 2, products.Len())
	assert.Equal(t, "p1", products.Items[0].ID)
	assert.Equal(t, "Widget", products.Items[0].Title)
	assert.Equal(t, "Acme", products.Items[0].Brand)
	assert.Equal(t, []string{"Widget", "Gadget"}, products.Titles())
	assert.Nil(t, products.FindByID("missing"))
	require.NotNil(t, products.FindByID("p2"))
}

func TestMatch(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, MatchPath, r.URL.Path)

		var query map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		assert.Equal(t, "p1", query["product_id"])
		assert.Equal(t, float64(10), query["limit"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"influencer": map[string]interface{}{
					"title": "Chan A",
					"stats": map[string]interface{}{"subscribers": 100000},
				},
				"score": 0.92,
				"details": map[string]interface{}{
					"industry":         "Tech",
					"er_score":         4.2,
					"keyword_overlap":  5,
					"similarity":       0.81,
					"matched_category": true,
				},
			},
		})
	}))

	results, err := client.Match("p1", 10)

	require.NoError(t, err)
	require.Equal(t, 1, results.Len())

	match := results.Items[0]
	require.NotNil(t, match.Influencer)
	assert.Equal(t, "Chan A", match.Influencer.Title)
	assert.Equal(t, 100000, match.Influencer.Stats.Subscribers)
	assert.Equal(t, 0.92, match.Score)

	require.NotNil(t, match.Details)
	assert.Equal(t, "Tech", match.Details.Industry)
	assert.Equal(t, 4.2, match.Details.ERScore)
	assert.Equal(t, 5, match.Details.KeywordOverlap)
	assert.Equal(t, 0.81, match.Details.Similarity)
	assert.True(t, match.Details.MatchedCategory)
}

func TestMatchAppliesDefaultLimit(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var query map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		assert.Equal(t, float64(DefaultMatchLimit), query["limit"])

		json.NewEncoder(w).Encode([]map[string]interface{}{})
	}))

	_, err := client.Match("p1", 0)
	require.NoError(t, err)
}

func TestMatchEmptyResults(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{})
	}))

	results, err := client.Match("p1", 10)

	require.NoError(t, err)
	assert.Equal(t, 0, results.Len())
}

func TestMatchBadStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	results, err := client.Match("p1", 10)

	assert.Nil(t, results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status")
}

func TestMatchMalformedPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{not json"))
	}))

	results, err := client.Match("p1", 10)

	assert.Nil(t, results)
	require.Error(t, err)
}

func TestRequestHeaders(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		json.NewEncoder(w).Encode([]map[string]interface{}{})
	}))

	client.SetToken("test-token")
	client.UserAgent = "test-agent"

	_, err := client.GetProducts()
	require.NoError(t, err)
}

func TestSendCampaign(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, CampaignPath, r.URL.Path)

		var req CampaignRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Collab offer", req.Subject)
		assert.True(t, req.DryRun)

		json.NewEncoder(w).Encode(CampaignReport{
			TotalTargets: 2,
			Attempted:    2,
			Items: []*CampaignItem{
				{Email: "a@example.com", Tag: "[INMA-001]", Status: "dry_run"},
				{Email: "b@example.com", Tag: "[INMA-002]", Status: "dry_run"},
			},
		})
	}))

	report, err := client.SendCampaign(&CampaignRequest{
		Subject:         "Collab offer",
		Body:            "Hello!",
		TagPrefix:       "INMA",
		StartIndex:      1,
		Limit:           200,
		SortByScoreDesc: true,
		DryRun:          true,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalTargets)
	require.Len(t, report.Items, 2)
	assert.Equal(t, "dry_run", report.Items[0].Status)
}

func TestPoll(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, InboxPath, r.URL.Path)

		var req PollRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "[INMA-001]", req.Tag)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"messages": []map[string]interface{}{
				{
					"id":         "m1",
					"threadId":   "t1",
					"from_email": "creator@example.com",
					"subject":    "Re: Collab offer [INMA-001]",
					"snippet":    "Sounds interesting",
					"body":       "Sounds interesting, what is the budget?",
				},
			},
		})
	}))

	messages, err := client.Poll(&PollRequest{Tag: "[INMA-001]", NewerThanDays: 14, MaxResults: 10, MarkRead: true})

	require.NoError(t, err)
	require.Equal(t, 1, messages.Len())
	assert.Equal(t, "creator@example.com", messages.Items[0].FromEmail)
	assert.Equal(t, "t1", messages.Items[0].ThreadID)
}

func TestGetStats(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, StatsPath, r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"total_influencers": 1200,
			"total_products":    45,
			"active_campaigns":  3,
			"emails_sent":       128,
			"segments": []map[string]interface{}{
				{"name": "Tech", "value": 320},
				{"name": "Beauty", "value": 210},
			},
		})
	}))

	stats, err := client.GetStats()

	require.NoError(t, err)
	assert.Equal(t, 1200, stats.TotalInfluencers)
	assert.Equal(t, 45, stats.TotalProducts)
	require.Len(t, stats.Segments, 2)
	assert.Equal(t, "Tech", stats.Segments[0].Name)
	assert.Equal(t, 320, stats.Segments[0].Value)
}

func TestGetInfluencers(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, InfluencersPath, r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "5", q.Get("limit"))
		assert.Equal(t, "0.7", q.Get("min_score"))
		assert.Equal(t, "Tech", q.Get("category"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"total": 42,
			"page":  2,
			"limit": 5,
			"items": []map[string]interface{}{
				{
					"_id":        "i1",
					"title":      "Chan A",
					"email":      "a@example.com",
					"inma_score": 0.92,
					"keywords":   []string{"tech", "gadgets"},
					"stats":      map[string]interface{}{"subscribers": 100000},
				},
			},
		})
	}))

	page, err := client.GetInfluencers(&InfluencerQuery{
		Page:     2,
		Limit:    5,
		MinScore: 0.7,
		Category: "Tech",
	})

	require.NoError(t, err)
	assert.Equal(t, 42, page.Total)
	assert.Equal(t, 2, page.Page)
	require.Equal(t, 1, page.Len())
	assert.Equal(t, "Chan A", page.Items[0].Title)
	assert.Equal(t, 0.92, page.Items[0].Score)
	assert.Equal(t, 100000, page.Items[0].Stats.Subscribers)
	assert.Equal(t, []string{"tech", "gadgets"}, page.Items[0].Keywords)
}

func TestGetInfluencersOmitsZeroFilters(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"total": 0, "page": 1, "limit": 20, "items": []interface{}{},
		})
	}))

	page, err := client.GetInfluencers(&InfluencerQuery{})

	require.NoError(t, err)
	assert.Equal(t, 0, page.Len())
}

func TestNullPayloadIsAnError(t *testing.T) {
	// A backend answering "null" must surface as an error, never as a
	// nil value the callers would dereference.
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	}))

	messages, err := client.Poll(&PollRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty payload")
	assert.Nil(t, messages)

	stats, err := client.GetStats()
	require.Error(t, err)
	assert.Nil(t, stats)

	report, err := client.SendCampaign(&CampaignRequest{Subject: "hi"})
	require.Error(t, err)
	assert.Nil(t, report)

	page, err := client.GetInfluencers(nil)
	require.Error(t, err)
	assert.Nil(t, page)
}
