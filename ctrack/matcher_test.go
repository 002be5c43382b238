package ctrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackAt(id int64, x, y float64) *Track {
	return newTrack(id, NewDetectionWithCentroid(Point{X: x, Y: y}, NewRect(x-5, y-5, 10, 10)), 0)
}

func TestGreedyMatcherGateRejectsDistantPair(t *testing.T) {
	matcher := NewGreedyMatcher(5.0)
	tracks := []*Track{trackAt(1, 10, 10)}
	detections := []Detection{NewDetectionWithCentroid(Point{X: 100, Y: 100}, NewRect(95, 95, 10, 10))}

	assignment := matcher.Match(tracks, detections)
	assert.Empty(t, assignment.Pairs)
	assert.Equal(t, []int64{1}, assignment.UnmatchedTracks)
	assert.Equal(t, []int{0}, assignment.UnmatchedDetections)
}

func TestGreedyMatcherNearestFirst(t *testing.T) {
	matcher := NewGreedyMatcher(20.0)
	tracks := []*Track{trackAt(1, 0, 0), trackAt(2, 10, 0)}
	detections := []Detection{
		NewDetectionWithCentroid(Point{X: 4, Y: 0}, NewRect(-1, -5, 10, 10)),
		NewDetectionWithCentroid(Point{X: 5, Y: 0}, NewRect(0, -5, 10, 10)),
	}

	assignment := matcher.Match(tracks, detections)
	require.Len(t, assignment.Pairs, 2)
	// Track 1 takes the closest detection (distance 4); detection 1 falls to
	// track 2 even though track 1 was equally close to it.
	assert.Contains(t, assignment.Pairs, MatchPair{TrackID: 1, DetectionIdx: 0})
	assert.Contains(t, assignment.Pairs, MatchPair{TrackID: 2, DetectionIdx: 1})
	assert.Empty(t, assignment.UnmatchedTracks)
	assert.Empty(t, assignment.UnmatchedDetections)
}

func TestGreedyMatcherTieBreaksByTrackID(t *testing.T) {
	matcher := NewGreedyMatcher(10.0)
	// Both tracks are exactly 5.0 away from the single detection.
	tracks := []*Track{trackAt(1, 0, 0), trackAt(2, 10, 0)}
	detections := []Detection{NewDetectionWithCentroid(Point{X: 5, Y: 0}, NewRect(0, -5, 10, 10))}

	assignment := matcher.Match(tracks, detections)
	require.Len(t, assignment.Pairs, 1)
	assert.Equal(t, MatchPair{TrackID: 1, DetectionIdx: 0}, assignment.Pairs[0])
	assert.Equal(t, []int64{2}, assignment.UnmatchedTracks)
}

func TestGreedyMatcherGateBoundaryIsEligible(t *testing.T) {
	matcher := NewGreedyMatcher(5.0)
	tracks := []*Track{trackAt(1, 0, 0)}
	// Distance is exactly the gate.
	detections := []Detection{NewDetectionWithCentroid(Point{X: 5, Y: 0}, NewRect(0, -5, 10, 10))}

	assignment := matcher.Match(tracks, detections)
	require.Len(t, assignment.Pairs, 1)
	assert.Equal(t, MatchPair{TrackID: 1, DetectionIdx: 0}, assignment.Pairs[0])
}

func TestMatchersEmptyInputs(t *testing.T) {
	matchers := map[string]Matcher{
		"greedy":    NewGreedyMatcher(5.0),
		"hungarian": NewHungarianMatcher(5.0),
		"iou":       NewIoUMatcher(0.0),
	}
	tracks := []*Track{trackAt(1, 0, 0), trackAt(2, 10, 0)}
	detections := []Detection{NewDetection(NewRect(0, 0, 10, 10))}

	for name, matcher := range matchers {
		t.Run(name, func(t *testing.T) {
			noTracks := matcher.Match(nil, detections)
			assert.Empty(t, noTracks.Pairs)
			assert.Empty(t, noTracks.UnmatchedTracks)
			assert.Equal(t, []int{0}, noTracks.UnmatchedDetections)

			noDets := matcher.Match(tracks, nil)
			assert.Empty(t, noDets.Pairs)
			assert.Equal(t, []int64{1, 2}, noDets.UnmatchedTracks)
			assert.Empty(t, noDets.UnmatchedDetections)
		})
	}
}

func TestHungarianMatcherBeatsGreedyOnCrossing(t *testing.T) {
	// Greedy commits track 1 to the closest detection (0.9) and forces track
	// 2 onto the far one (3.5). The optimal assignment swaps them for a lower
	// total (1.5 + 1.1 vs 0.9 + 3.5).
	tracks := []*Track{trackAt(1, 0, 0), trackAt(2, 2, 0)}
	detections := []Detection{
		NewDetectionWithCentroid(Point{X: 0.9, Y: 0}, NewRect(-4.1, -5, 10, 10)),
		NewDetectionWithCentroid(Point{X: -1.5, Y: 0}, NewRect(-6.5, -5, 10, 10)),
	}

	greedy := NewGreedyMatcher(10.0).Match(tracks, detections)
	require.Len(t, greedy.Pairs, 2)
	assert.Contains(t, greedy.Pairs, MatchPair{TrackID: 1, DetectionIdx: 0})
	assert.Contains(t, greedy.Pairs, MatchPair{TrackID: 2, DetectionIdx: 1})

	optimal := NewHungarianMatcher(10.0).Match(tracks, detections)
	require.Len(t, optimal.Pairs, 2)
	assert.Contains(t, optimal.Pairs, MatchPair{TrackID: 1, DetectionIdx: 1})
	assert.Contains(t, optimal.Pairs, MatchPair{TrackID: 2, DetectionIdx: 0})
}

func TestHungarianMatcherRespectsGate(t *testing.T) {
	matcher := NewHungarianMatcher(5.0)
	tracks := []*Track{trackAt(1, 0, 0)}
	detections := []Detection{NewDetectionWithCentroid(Point{X: 50, Y: 0}, NewRect(45, -5, 10, 10))}

	assignment := matcher.Match(tracks, detections)
	assert.Empty(t, assignment.Pairs)
	assert.Equal(t, []int64{1}, assignment.UnmatchedTracks)
	assert.Equal(t, []int{0}, assignment.UnmatchedDetections)
}

func TestIoUMatcherMatchesOverlap(t *testing.T) {
	matcher := NewIoUMatcher(0.0)
	tracks := []*Track{newTrack(1, NewDetection(NewRect(0, 0, 10, 10)), 0)}
	detections := []Detection{
		NewDetection(NewRect(2, 0, 10, 10)),
		NewDetection(NewRect(100, 100, 10, 10)),
	}

	assignment := matcher.Match(tracks, detections)
	require.Len(t, assignment.Pairs, 1)
	assert.Equal(t, MatchPair{TrackID: 1, DetectionIdx: 0}, assignment.Pairs[0])
	assert.Equal(t, []int{1}, assignment.UnmatchedDetections)
}

func TestDistanceMatrixParallelConsistency(t *testing.T) {
	// Enough cells to cross the parallel threshold; values must match the
	// straightforward serial computation.
	tracks := make([]*Track, 70)
	for i := range tracks {
		tracks[i] = trackAt(int64(i+1), float64(i*3), float64(i))
	}
	detections := make([]Detection, 70)
	for j := range detections {
		detections[j] = NewDetectionWithCentroid(Point{X: float64(j * 2), Y: float64(70 - j)}, NewRect(0, 0, 1, 1))
	}

	dists := distanceMatrix(tracks, detections)
	require.NotNil(t, dists)
	for i := range tracks {
		for j := range detections {
			want := euclideanDistance(tracks[i].Centroid, detections[j].Centroid)
			assert.InDelta(t, want, dists.At(i, j), eps)
		}
	}
}
