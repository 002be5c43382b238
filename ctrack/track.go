package ctrack

// TrackState is the lifecycle state of a track. There is no Removed state
// value: removed tracks are purged from the registry, not kept as tombstones.
type TrackState uint8

const (
	// TrackActive means the track was matched in the immediately preceding frame.
	TrackActive TrackState = iota
	// TrackLost means the track has been unmatched for at least one frame but
	// is still within its disappearance tolerance.
	TrackLost
)

func (s TrackState) String() string {
	switch s {
	case TrackActive:
		return "active"
	case TrackLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Track is the persistent representation of one physical object across
// frames. It is owned exclusively by TrackRegistry; everything outside the
// registry observes tracks through copies.
type Track struct {
	// ID is assigned once at creation and never changes or gets reused.
	ID int64
	// Centroid is the last matched position, carried forward while lost.
	Centroid Point
	// BBox comes from the last matched detection.
	BBox Rectangle
	// Label comes from the last matched detection and may go stale while lost.
	Label string
	// Disappeared counts consecutive frames since the last successful match.
	Disappeared int

	history    []Point
	maxHistory int
}

func newTrack(id int64, det Detection, maxHistory int) *Track {
	track := &Track{
		ID:         id,
		Centroid:   det.Centroid,
		BBox:       det.BBox,
		Label:      det.Label,
		maxHistory: maxHistory,
	}
	if maxHistory > 0 {
		track.history = make([]Point, 0, maxHistory)
		track.history = append(track.history, det.Centroid)
	}
	return track
}

// State derives the lifecycle state from the disappearance counter.
func (track *Track) State() TrackState {
	if track.Disappeared == 0 {
		return TrackActive
	}
	return TrackLost
}

// update absorbs a matched detection and resets the disappearance counter.
func (track *Track) update(det Detection) {
	track.Centroid = det.Centroid
	track.BBox = det.BBox
	track.Label = det.Label
	track.Disappeared = 0
	if track.maxHistory > 0 {
		track.history = append(track.history, det.Centroid)
		if len(track.history) > track.maxHistory {
			track.history = track.history[1:]
		}
	}
}

// History returns a copy of the recorded matched centroids. It is nil unless
// history retention was enabled at session construction.
func (track *Track) History() []Point {
	if track.history == nil {
		return nil
	}
	out := make([]Point, len(track.history))
	copy(out, track.history)
	return out
}
