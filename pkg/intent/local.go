package intent

import (
	"context"
	"strings"

	"github.com/antzucaro/matchr"
)

// DefaultFuzzyThreshold is the minimum Jaro-Winkler similarity for a
// garbled leading phrase to be accepted as a command.
const DefaultFuzzyThreshold = 0.85

// commandPhrase maps a canonical spoken phrasing to an intent kind.
// Longer phrasings come first so that "open new tab" is not consumed
// by "open".
var commandPhrases = []struct {
	phrase string
	kind   Kind
}{
	{"open a new tab with", KindOpenTab},
	{"open new tab with", KindOpenTab},
	{"open a new tab", KindOpenTab},
	{"open new tab", KindOpenTab},
	{"in a new tab open", KindOpenTab},
	{"new tab", KindOpenTab},
	{"switch to the tab", KindSwitchTab},
	{"switch to tab", KindSwitchTab},
	{"switch to", KindSwitchTab},
	{"switch tab to", KindSwitchTab},
	{"go to the tab", KindSwitchTab},
	{"go to tab", KindSwitchTab},
	{"show me the tab", KindSwitchTab},
	{"focus on", KindSwitchTab},
	{"focus", KindSwitchTab},
	{"navigate to", KindNavigate},
	{"take me to", KindNavigate},
	{"go to", KindNavigate},
	{"open", KindNavigate},
	{"visit", KindNavigate},
	{"search for", KindNavigate},
	{"what tabs are open", KindListTabs},
	{"which tabs are open", KindListTabs},
	{"list tabs", KindListTabs},
	{"list my tabs", KindListTabs},
	{"show tabs", KindListTabs},
	{"what can you do", KindHelp},
	{"help", KindHelp},
}

// LocalClassifier is a deterministic fallback used when no LLM is
// configured or reachable. It matches the leading words of the
// utterance against known command phrasings, tolerating transcription
// errors via Jaro-Winkler similarity.
type LocalClassifier struct {
	fuzzyThreshold float64
}

// LocalOption configures a LocalClassifier.
type LocalOption func(*LocalClassifier)

// WithFuzzyThreshold sets the minimum similarity for a fuzzy phrase
// match. Default: 0.85.
func WithFuzzyThreshold(threshold float64) LocalOption {
	return func(c *LocalClassifier) {
		c.fuzzyThreshold = threshold
	}
}

// NewLocalClassifier creates a local classifier with defaults.
func NewLocalClassifier(opts ...LocalOption) *LocalClassifier {
	c := &LocalClassifier{fuzzyThreshold: DefaultFuzzyThreshold}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify matches the utterance against the command phrase table.
// It never returns an error; unrecognized input yields KindUnknown
// with the full utterance preserved as the target.
func (c *LocalClassifier) Classify(_ context.Context, utterance string) (Intent, error) {
	text := strings.ToLower(strings.TrimSpace(utterance))
	if text == "" {
		return Intent{Kind: KindUnknown, Source: "local"}, nil
	}

	// Exact phrase or phrase-prefix match first.
	for _, p := range commandPhrases {
		if text == p.phrase {
			return Intent{Kind: p.kind, Confidence: 1, Source: "local"}, nil
		}
		if strings.HasPrefix(text, p.phrase+" ") {
			return Intent{
				Kind:       p.kind,
				Target:     strings.TrimSpace(text[len(p.phrase):]),
				Confidence: 1,
				Source:     "local",
			}, nil
		}
	}

	// Fuzzy pass: compare the utterance's leading words against each
	// phrase, tolerating speech-to-text garbling ("swich to github").
	words := strings.Fields(text)
	best := Intent{Kind: KindUnknown, Target: text, Source: "local"}
	bestScore := 0.0
	for _, p := range commandPhrases {
		n := len(strings.Fields(p.phrase))
		if len(words) < n {
			continue
		}
		head := strings.Join(words[:n], " ")
		if score := matchr.JaroWinkler(head, p.phrase, false); score > bestScore {
			bestScore = score
			best = Intent{
				Kind:       p.kind,
				Target:     strings.Join(words[n:], " "),
				Confidence: score,
				Source:     "local",
			}
		}
	}

	if bestScore < c.fuzzyThreshold {
		return Intent{Kind: KindUnknown, Target: text, Source: "local"}, nil
	}
	return best, nil
}
