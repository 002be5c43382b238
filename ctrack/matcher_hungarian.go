package ctrack

import (
	hungarian "github.com/arthurkushman/go-hungarian"
)

// HungarianMatcher resolves the minimum-total-distance assignment
// (Kuhn-Munkres) behind the same contract as GreedyMatcher. Gated distances
// are converted to scores, the matrix is padded to square, and solved pairs
// that land on a gated or padded cell are discarded.
type HungarianMatcher struct {
	// Pairs farther apart than this are never matched.
	MaxMatchDistance float64
}

// NewHungarianMatcher creates a new instance of HungarianMatcher.
func NewHungarianMatcher(maxMatchDistance float64) *HungarianMatcher {
	return &HungarianMatcher{MaxMatchDistance: maxMatchDistance}
}

func (m *HungarianMatcher) Match(tracks []*Track, detections []Detection) Assignment {
	numTracks := len(tracks)
	numDets := len(detections)
	if numTracks == 0 || numDets == 0 {
		assignment := Assignment{}
		for _, track := range tracks {
			assignment.UnmatchedTracks = append(assignment.UnmatchedTracks, track.ID)
		}
		for j := range detections {
			assignment.UnmatchedDetections = append(assignment.UnmatchedDetections, j)
		}
		return assignment
	}

	dists := distanceMatrix(tracks, detections)

	// SolveMax maximizes, so invert distances into scores. An eligible pair
	// scores at least 1.0; gated pairs and padding stay at 0.0 and are
	// filtered out after solving.
	size := max(numTracks, numDets)
	scores := make([][]float64, size)
	for i := range scores {
		scores[i] = make([]float64, size)
	}
	for i := 0; i < numTracks; i++ {
		for j := 0; j < numDets; j++ {
			d := dists.At(i, j)
			if d > m.MaxMatchDistance {
				continue
			}
			scores[i][j] = m.MaxMatchDistance - d + 1.0
		}
	}

	solved := hungarian.SolveMax(scores)

	assignment := Assignment{}
	matchedDets := make(map[int]struct{}, numDets)
	for i := 0; i < numTracks; i++ {
		rowMap := solved[i]
		matched := false
		for j := range rowMap {
			if j >= numDets || scores[i][j] <= 0 {
				break
			}
			assignment.Pairs = append(assignment.Pairs, MatchPair{
				TrackID:      tracks[i].ID,
				DetectionIdx: j,
			})
			matchedDets[j] = struct{}{}
			matched = true
			break
		}
		if !matched {
			assignment.UnmatchedTracks = append(assignment.UnmatchedTracks, tracks[i].ID)
		}
	}
	for j := range detections {
		if _, ok := matchedDets[j]; !ok {
			assignment.UnmatchedDetections = append(assignment.UnmatchedDetections, j)
		}
	}
	return assignment
}
