package assistant

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mara2525/clearpath-health-backend/internal/catalog"
)

// matchThreshold is the minimum similarity a corpus question must reach to be
// accepted as a match. The comparison is strict > so a run of equal scores
// keeps the first corpus entry — corpus order is part of the contract.
const matchThreshold = 0.3

// minTokenLength excludes short/common words ("the", "has", "is") from the
// token-overlap count. Only tokens strictly longer than this qualify.
const minTokenLength = 3

// normalize folds text for comparison: Unicode NFKC normalization, lowercase,
// trimmed. NFKC collapses typographic variants (curly quotes, ligatures,
// full-width characters) that users paste in from other apps.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}

// Similarity scores how close two question strings are, in [0, 1]:
//
//   - exact equality after normalization → 1.0
//   - substring containment in either direction → 0.8
//   - otherwise token overlap: shared tokens longer than minTokenLength,
//     scored 2*shared/(len1+len2); no qualifying shared tokens → 0
//
// Shared tokens are counted from the first string's side, so a word repeated
// in the query counts once per occurrence.
func Similarity(a, b string) float64 {
	s1 := normalize(a)
	s2 := normalize(b)

	if s1 == s2 {
		return 1.0
	}
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return 0.8
	}

	words1 := strings.Fields(s1)
	words2 := strings.Fields(s2)

	in2 := make(map[string]bool, len(words2))
	for _, w := range words2 {
		in2[w] = true
	}

	shared := 0
	for _, w := range words1 {
		if len(w) > minTokenLength && in2[w] {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}

	return 2 * float64(shared) / float64(len(words1)+len(words2))
}

// Match is a successful corpus lookup: the canned answer, how confident the
// matcher is, and the provider/plan references attached to the corpus entry.
type Match struct {
	Answer     string
	Confidence float64
	Providers  []string
	Plans      []string
}

// BestMatch scans the corpus for the entry most similar to the query.
// Returns false when nothing clears the threshold or the corpus is empty.
func BestMatch(query string, corpus []catalog.QAEntry) (Match, bool) {
	var best *catalog.QAEntry
	bestScore := 0.0

	for i := range corpus {
		score := Similarity(query, corpus[i].Question)
		if score > bestScore && score > matchThreshold {
			bestScore = score
			best = &corpus[i]
		}
	}

	if best == nil {
		return Match{}, false
	}
	return Match{
		Answer:     best.Answer,
		Confidence: bestScore,
		Providers:  best.Providers,
		Plans:      best.Plans,
	}, true
}
