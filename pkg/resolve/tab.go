package resolve

import (
	"errors"
	"sort"

	"github.com/voxpilot/voxpilot/pkg/match"
)

// ErrNoMatch is returned when no open tab scores above the selection
// threshold. It is expected under normal use (the user asked for a tab
// that isn't open) and should be announced, not treated as a crash.
var ErrNoMatch = errors.New("no matching tab")

// Tab is a snapshot of an open browser tab. The resolver only reads
// it; the browser owns the live object.
type Tab struct {
	ID       string
	Title    string
	URL      string
	WindowID string
}

// ScoredTab pairs a tab with its match score. Score is always in
// [0,100].
type ScoredTab struct {
	Tab   Tab
	Score float64
}

// SelectTab scores every tab in the snapshot against the spoken query
// and returns the best match together with its score, so the caller
// can activate both the tab and its window.
//
// Each tab is scored against its title and its URL; the larger of the
// two wins. Ties keep the first tab in snapshot order (stable sort),
// so callers should not rely on a particular tab across identically
// scored candidates.
func (r *Resolver) SelectTab(query string, tabs []Tab) (ScoredTab, error) {
	if len(tabs) == 0 {
		return ScoredTab{}, ErrNoMatch
	}

	scored := make([]ScoredTab, 0, len(tabs))
	for _, tab := range tabs {
		score := match.Score(query, tab.Title)
		if urlScore := match.Score(query, tab.URL); urlScore > score {
			score = urlScore
		}
		scored = append(scored, ScoredTab{Tab: tab, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	best := scored[0]
	if best.Score < r.threshold {
		return ScoredTab{}, ErrNoMatch
	}
	return best, nil
}
