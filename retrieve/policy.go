package retrieve

// KPolicy chooses the retrieval size from the number of keywords extracted
// from the query. Implementations must be monotonic non-increasing: a more
// specific query (more keywords) never widens the net.
type KPolicy func(keywordCount int) int

// DefaultKPolicy is the tuned default tiering:
// generic queries cast a broad net, specific ones a narrow one.
//
//	0 keywords  -> 50
//	1-2 keywords -> 40
//	3+ keywords -> 25
//
// The exact tier values are empirical knobs, not structural requirements;
// callers with different corpora supply their own KPolicy.
func DefaultKPolicy(keywordCount int) int {
	switch {
	case keywordCount <= 0:
		return 50
	case keywordCount <= 2:
		return 40
	default:
		return 25
	}
}
