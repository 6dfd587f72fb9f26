package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/inma-labs/inma-matcher/internal/inma"
)

// Score thresholds for the confidence tiers.
const (
	highThreshold   = 0.8
	mediumThreshold = 0.6
)

const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

// Lines for the workflow states that have no result rows to show. They must
// stay distinguishable from each other and from a rendered result list.
const (
	MsgNotRequested = "no matches requested yet"
	MsgNoResults    = "no matching influencers found"
)

// Percentage converts a normalized score into the displayed percentage.
func Percentage(score float64) int {
	return int(math.Round(score * 100))
}

// Tier buckets a score into a confidence tier.
func Tier(score float64) string {
	switch {
	case score > highThreshold:
		return TierHigh
	case score > mediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// Results renders the match list in the order received, one row per entry.
// A nil list means no request was made yet, an empty list means the backend
// found nothing.
func Results(results *inma.MatchResults) string {
	if results == nil {
		return MsgNotRequested
	}

	if results.Len() == 0 {
		return MsgNoResults
	}

	rows := make([]string, 0, results.Len())
	for i, match := range results.Items {
		rows = append(rows, Row(i+1, match))
	}

	return strings.Join(rows, "\n")
}

// Row renders a single ranked entry with its confidence indicator and the
// detail fields as returned by the backend.
func Row(rank int, match *inma.MatchResult) string {
	title := ""
	subscribers := 0
	if match.Influencer != nil {
		title = match.Influencer.Title
		subscribers = match.Influencer.Stats.Subscribers
	}

	row := fmt.Sprintf("%2d. %s | %d%% (%s) | subscribers: %d",
		rank, title, Percentage(match.Score), Tier(match.Score), subscribers,
	)

	if match.Details != nil {
		row += fmt.Sprintf(" | industry: %s, er_score: %v, keyword_overlap: %d, similarity: %v, matched_category: %t",
			match.Details.Industry,
			match.Details.ERScore,
			match.Details.KeywordOverlap,
			match.Details.Similarity,
			match.Details.MatchedCategory,
		)
	}

	return row
}

// Failure renders the failed terminal state. The trigger stays usable, so
// the line points at manual re-issue.
func Failure(err error) string {
	return fmt.Sprintf("match request failed: %v (re-run the request to try again)", err)
}
