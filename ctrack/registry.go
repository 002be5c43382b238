package ctrack

import (
	"fmt"
	"sort"
)

// TrackRegistry is the sole owner of every live Track. No component outside
// the registry may create, mutate or destroy one; consumers observe tracks
// through Snapshot copies.
type TrackRegistry struct {
	tracks         map[int64]*Track
	alloc          idAllocator
	maxDisappeared int
	historyLen     int
}

func newTrackRegistry(maxDisappeared, historyLen int) *TrackRegistry {
	return &TrackRegistry{
		tracks:         make(map[int64]*Track),
		maxDisappeared: maxDisappeared,
		historyLen:     historyLen,
	}
}

// Len returns the number of live tracks.
func (r *TrackRegistry) Len() int {
	return len(r.tracks)
}

// Tracks returns the live tracks sorted by ascending id. The slice is fresh
// but the pointers alias registry state: this is matcher input, not a
// consumer snapshot.
func (r *TrackRegistry) Tracks() []*Track {
	out := make([]*Track, 0, len(r.tracks))
	for _, track := range r.tracks {
		out = append(out, track)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Apply folds one frame's assignment into the registry. The order is fixed:
//
//  1. purge tracks already past tolerance from previous frames;
//  2. update matched tracks from their detections;
//  3. age unmatched tracks, pruning any that cross tolerance;
//  4. register a new track per unmatched detection, in input order.
//
// Staleness is evaluated before matches are applied (step 1 before step 2),
// so a track reappearing on the exact tolerance boundary frame is still
// rescued by its match instead of dying first.
//
// An assignment carrying the same track or detection twice violates the
// partial-bijection contract and panics.
func (r *TrackRegistry) Apply(assignment Assignment, detections []Detection) {
	for id, track := range r.tracks {
		if track.Disappeared > r.maxDisappeared {
			delete(r.tracks, id)
		}
	}

	seenTracks := make(map[int64]struct{}, len(assignment.Pairs))
	seenDets := make(map[int]struct{}, len(assignment.Pairs))
	for _, pair := range assignment.Pairs {
		if _, ok := seenTracks[pair.TrackID]; ok {
			panic(fmt.Sprintf("track %d assigned twice in one frame", pair.TrackID))
		}
		if _, ok := seenDets[pair.DetectionIdx]; ok {
			panic(fmt.Sprintf("detection %d assigned twice in one frame", pair.DetectionIdx))
		}
		seenTracks[pair.TrackID] = struct{}{}
		seenDets[pair.DetectionIdx] = struct{}{}
		track, ok := r.tracks[pair.TrackID]
		if !ok {
			// Matchers only ever see live tracks
			panic("should be impossible")
		}
		track.update(detections[pair.DetectionIdx])
	}

	for _, id := range assignment.UnmatchedTracks {
		track, ok := r.tracks[id]
		if !ok {
			// Purged in step 1
			continue
		}
		track.Disappeared++
		if track.Disappeared > r.maxDisappeared {
			delete(r.tracks, id)
		}
	}

	for _, detIdx := range assignment.UnmatchedDetections {
		id := r.alloc.next()
		r.tracks[id] = newTrack(id, detections[detIdx], r.historyLen)
	}
}

// TrackSnapshot is a consumer-facing copy of one live track.
type TrackSnapshot struct {
	Centroid Point
	BBox     Rectangle
	Label    string
	State    TrackState
	// History is nil unless history retention is enabled for the session.
	History []Point
}

// Snapshot maps stable track id to the current view of every Active and Lost
// track. Removed tracks are simply absent.
type Snapshot map[int64]TrackSnapshot

// Snapshot copies the current registry contents.
func (r *TrackRegistry) Snapshot() Snapshot {
	snap := make(Snapshot, len(r.tracks))
	for id, track := range r.tracks {
		snap[id] = TrackSnapshot{
			Centroid: track.Centroid,
			BBox:     track.BBox,
			Label:    track.Label,
			State:    track.State(),
			History:  track.History(),
		}
	}
	return snap
}
