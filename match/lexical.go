package match

import "math"

// BM25 constants. k1 controls term-frequency saturation, b controls document
// length normalization.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// CorpusStats holds the document frequencies needed for IDF weighting,
// computed over the candidate pool snapshot a ranking call operates on.
type CorpusStats struct {
	docCount  int
	docFreq   map[string]int
	avgDocLen float64
}

// NewCorpusStats builds corpus statistics from the candidate keyword profiles.
func NewCorpusStats(profiles []KeywordProfile) *CorpusStats {
	stats := &CorpusStats{
		docCount: len(profiles),
		docFreq:  make(map[string]int),
	}

	var totalLen int
	for _, profile := range profiles {
		totalLen += profile.Length()
		for keyword := range profile {
			stats.docFreq[keyword]++
		}
	}
	if stats.docCount > 0 {
		stats.avgDocLen = float64(totalLen) / float64(stats.docCount)
	}
	return stats
}

// IDF returns the inverse document frequency weight for a keyword. Keywords
// rare across the corpus weigh more; keywords in every document weigh least
// but never zero or negative.
func (s *CorpusStats) IDF(keyword string) float64 {
	df := float64(s.docFreq[keyword])
	n := float64(s.docCount)
	return math.Log(1 + (n-df+0.5)/(df+0.5))
}

// LexicalScore computes a BM25-style relevance score in [0, 1] between the
// query keywords and a candidate's keyword profile.
//
// Each query keyword found in the candidate contributes its IDF weight times
// a saturating term-frequency factor. The accumulated score is normalized by
// the query's total IDF mass, so a candidate containing every query keyword
// once at average document length scores exactly 1; repeated occurrences can
// push individual terms past their unit contribution, so the result is
// clamped. Empty query or empty candidate scores 0.
func LexicalScore(query, candidate KeywordProfile, stats *CorpusStats) float64 {
	if len(query) == 0 || len(candidate) == 0 || stats == nil || stats.docCount == 0 {
		return 0
	}

	docLen := float64(candidate.Length())
	lengthNorm := 1.0
	if stats.avgDocLen > 0 {
		lengthNorm = 1 - bm25B + bm25B*docLen/stats.avgDocLen
	}

	var score, norm float64
	for keyword := range query {
		idf := stats.IDF(keyword)
		norm += idf

		tf := float64(candidate[keyword])
		if tf == 0 {
			continue
		}
		score += idf * tf * (bm25K1 + 1) / (tf + bm25K1*lengthNorm)
	}

	if norm == 0 {
		return 0
	}
	return math.Min(1, score/norm)
}
