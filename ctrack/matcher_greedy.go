package ctrack

// GreedyMatcher resolves assignments nearest-first: the smallest remaining
// gated distance wins, both sides leave the pool, repeat until no eligible
// pair is left. Under a static camera with near-straight per-frame motion
// this coincides with the optimal assignment in the overwhelming majority of
// frames; HungarianMatcher is the drop-in strict variant.
type GreedyMatcher struct {
	// Pairs farther apart than this are never matched, even when no closer
	// alternative exists.
	MaxMatchDistance float64
}

// NewGreedyMatcher creates a new instance of GreedyMatcher.
func NewGreedyMatcher(maxMatchDistance float64) *GreedyMatcher {
	return &GreedyMatcher{MaxMatchDistance: maxMatchDistance}
}

func (m *GreedyMatcher) Match(tracks []*Track, detections []Detection) Assignment {
	pq := make(candidateHeap, 0, len(tracks)*len(detections))
	if dists := distanceMatrix(tracks, detections); dists != nil {
		for i, track := range tracks {
			for j := range detections {
				d := dists.At(i, j)
				if d > m.MaxMatchDistance {
					continue
				}
				pq.Push(matchCandidate{
					trackIdx: i,
					trackID:  track.ID,
					detIdx:   j,
					cost:     d,
				})
			}
		}
	}
	return commitCandidates(&pq, tracks, detections)
}
