package ctrack

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// MatchPair binds one track to one detection index for the current frame.
type MatchPair struct {
	TrackID      int64
	DetectionIdx int
}

// Assignment is a one-to-one pairing between a subset of tracks and a subset
// of detections for one frame, plus both leftovers. A track or detection
// appearing twice is a programming error.
type Assignment struct {
	Pairs               []MatchPair
	UnmatchedTracks     []int64
	UnmatchedDetections []int
}

// Matcher resolves which detections belong to which existing tracks. Tracks
// are supplied sorted by ascending id and detections in their insertion
// order; implementations must be deterministic for a given input and must
// never mutate either argument.
type Matcher interface {
	Match(tracks []*Track, detections []Detection) Assignment
}

// Matrices with at least this many cells get their rows computed concurrently.
const parallelCellsThreshold = 4096

// distanceMatrix computes the full pairwise Euclidean distance matrix with
// tracks as rows and detections as columns. Returns nil if either side is
// empty.
func distanceMatrix(tracks []*Track, detections []Detection) *mat.Dense {
	rows, cols := len(tracks), len(detections)
	if rows == 0 || cols == 0 {
		return nil
	}
	dists := mat.NewDense(rows, cols, nil)
	fillRow := func(i int) {
		for j := range detections {
			dists.Set(i, j, euclideanDistance(tracks[i].Centroid, detections[j].Centroid))
		}
	}
	if rows*cols < parallelCellsThreshold {
		for i := range tracks {
			fillRow(i)
		}
		return dists
	}
	// Rows are disjoint, so concurrent writes never overlap.
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range tracks {
		i := i
		g.Go(func() error {
			fillRow(i)
			return nil
		})
	}
	_ = g.Wait()
	return dists
}

// commitCandidates pops candidates in heap order, committing every pair whose
// track and detection are both still free, and collects the leftovers.
func commitCandidates(pq *candidateHeap, tracks []*Track, detections []Detection) Assignment {
	matchedTracks := make(map[int]struct{}, len(tracks))
	matchedDets := make(map[int]struct{}, len(detections))
	assignment := Assignment{}
	for pq.Len() > 0 {
		candidate := pq.Pop()
		if _, ok := matchedTracks[candidate.trackIdx]; ok {
			continue
		}
		if _, ok := matchedDets[candidate.detIdx]; ok {
			continue
		}
		matchedTracks[candidate.trackIdx] = struct{}{}
		matchedDets[candidate.detIdx] = struct{}{}
		assignment.Pairs = append(assignment.Pairs, MatchPair{
			TrackID:      candidate.trackID,
			DetectionIdx: candidate.detIdx,
		})
	}
	for i, track := range tracks {
		if _, ok := matchedTracks[i]; !ok {
			assignment.UnmatchedTracks = append(assignment.UnmatchedTracks, track.ID)
		}
	}
	for j := range detections {
		if _, ok := matchedDets[j]; !ok {
			assignment.UnmatchedDetections = append(assignment.UnmatchedDetections, j)
		}
	}
	return assignment
}
