// Package match scores how well transcribed voice input matches
// candidate strings such as tab titles and URLs. Scores are 0-100.
// Voice transcripts are noisier than typed text, so the scorer layers
// phonetic-confusion detection and subsequence matching under the
// usual exact/prefix/substring checks.
package match

import "strings"

// Kind labels which rule of the scoring decision list produced a score.
// It exists for logging and diagnostics; callers rank on the score alone.
type Kind string

const (
	KindNone        Kind = "none"
	KindExact       Kind = "exact"
	KindPrefix      Kind = "prefix"
	KindSubstring   Kind = "substring"
	KindPhonetic    Kind = "phonetic"
	KindAllWords    Kind = "all_words"
	KindSomeWords   Kind = "some_words"
	KindSubsequence Kind = "subsequence"
)

// Fixed scores for the early rules of the decision list. Later rules
// compute their scores but always land below these.
const (
	scoreExact     = 100
	scorePrefix    = 90
	scoreSubstring = 85
	scoreAllWords  = 70
)

// Score compares a spoken query against a candidate string (a tab
// title or URL) and returns a 0-100 estimate of how well they match.
func Score(query, text string) float64 {
	score, _ := ScoreKind(query, text)
	return score
}

// ScoreKind is Score plus the rule that fired. Rules are tried in
// order and the first applicable one wins:
//
//  1. exact match (case-insensitive, trimmed)
//  2. text starts with query
//  3. text contains query
//  4. phonetic similarity above 80
//  5. every/some query word contained in a text word
//  6. greedy character subsequence, floored by half the phonetic score
func ScoreKind(query, text string) (float64, Kind) {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(strings.TrimSpace(text))

	// An empty query must not ride the prefix rule to 90 for every
	// candidate; it matches nothing.
	if q == "" || t == "" {
		return 0, KindNone
	}

	if q == t {
		return scoreExact, KindExact
	}
	if strings.HasPrefix(t, q) {
		return scorePrefix, KindPrefix
	}
	if strings.Contains(t, q) {
		return scoreSubstring, KindSubstring
	}

	phonetic := PhoneticSimilarity(q, t)
	if phonetic > 80 {
		return phonetic, KindPhonetic
	}

	qWords := strings.Fields(q)
	tWords := strings.Fields(t)
	matched := 0
	for _, qw := range qWords {
		for _, tw := range tWords {
			if strings.Contains(tw, qw) {
				matched++
				break
			}
		}
	}
	if len(qWords) > 0 && matched == len(qWords) {
		return scoreAllWords, KindAllWords
	}
	if matched > 0 {
		return 50 + float64(matched)/float64(len(qWords))*20, KindSomeWords
	}

	charScore := subsequenceScore(q, t)
	if half := phonetic * 0.5; half > charScore {
		return half, KindPhonetic
	}
	return charScore, KindSubsequence
}

// subsequenceScore greedily matches each query rune against the text
// in order, advancing a cursor without resetting, and scales the
// matched fraction into [0,40].
func subsequenceScore(q, t string) float64 {
	rq := []rune(q)
	rt := []rune(t)

	pos := 0
	matched := 0
	for _, c := range rq {
		for i := pos; i < len(rt); i++ {
			if rt[i] == c {
				matched++
				pos = i + 1
				break
			}
		}
	}

	if len(rq) == 0 {
		return 0
	}
	return float64(matched) / float64(len(rq)) * 40
}
