package ctrack

// IoUMatcher is an overlap-gated variant: pairs are ranked by bounding box
// IoU instead of centroid distance. Useful when boxes are large relative to
// per-frame motion and centroid gating gets ambiguous.
type IoUMatcher struct {
	// Pairs with IoU at or below this value are ineligible. Zero keeps any
	// overlapping pair eligible.
	IoUThreshold float64
}

// NewIoUMatcher creates a new instance of IoUMatcher.
func NewIoUMatcher(iouThreshold float64) *IoUMatcher {
	return &IoUMatcher{IoUThreshold: iouThreshold}
}

func (m *IoUMatcher) Match(tracks []*Track, detections []Detection) Assignment {
	pq := make(candidateHeap, 0, len(tracks)*len(detections))
	for i, track := range tracks {
		for j := range detections {
			overlap := IoU(track.BBox, detections[j].BBox)
			if overlap <= m.IoUThreshold {
				continue
			}
			// Negated so the min-heap pops the strongest overlap first.
			pq.Push(matchCandidate{
				trackIdx: i,
				trackID:  track.ID,
				detIdx:   j,
				cost:     -overlap,
			})
		}
	}
	return commitCandidates(&pq, tracks, detections)
}
