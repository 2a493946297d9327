package match

import "strings"

// confusionScore is returned whenever a known spoken/written confusion
// pair is detected. It outranks the substring rule in the fuzzy scorer
// so that garbled-but-recognizable voice input still wins.
const confusionScore = 95

// confusionPair encodes a systematic speech-to-text misrecognition:
// what the transcriber tends to emit versus what the user meant.
type confusionPair struct {
	spoken  string
	written string
}

// confusionPairs is checked before any distance metric. Pairs are
// matched on normalized text (lowercase, alphanumerics only), so
// spellings that differ only in spacing or punctuation collapse to the
// same form.
var confusionPairs = []confusionPair{
	{"getup", "github"},
	{"get up", "github"},
	{"git hub", "github"},
	{"youtoo", "youtube"},
	{"you too", "youtube"},
	{"u tube", "youtube"},
	{"slak", "slack"},
	{"krome", "chrome"},
	{"crome", "chrome"},
	{"gee mail", "gmail"},
	{"g mail", "gmail"},
	{"twiter", "twitter"},
	{"linkdin", "linkedin"},
	{"linked in", "linkedin"},
	{"face book", "facebook"},
	{"redit", "reddit"},
	{"amazone", "amazon"},
	{"stack over flow", "stackoverflow"},
}

// PhoneticSimilarity estimates how close two strings sound on a 0-100
// scale. Known speech-to-text confusions score a fixed 95; everything
// else falls back to a normalized edit-distance ratio. Two strings
// that are empty after normalization score 0.
func PhoneticSimilarity(a, b string) float64 {
	na := normalize(a)
	nb := normalize(b)

	if na == "" && nb == "" {
		return 0
	}

	for _, p := range confusionPairs {
		spoken := normalize(p.spoken)
		written := normalize(p.written)
		if (strings.Contains(na, spoken) && strings.Contains(nb, written)) ||
			(strings.Contains(nb, spoken) && strings.Contains(na, written)) {
			return confusionScore
		}
	}

	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}

	dist := Levenshtein(na, nb)
	return float64(maxLen-dist) / float64(maxLen) * 100
}

// normalize lowercases s and strips everything outside [a-z0-9].
// Diacritics and non-Latin scripts are dropped rather than folded;
// matching quality for non-English utterances is undefined.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
