package ctrack

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Config is the immutable per-session tuning, supplied at construction.
type Config struct {
	// MaxMatchDistance is the matching gate: a detection farther than this
	// from every live track centroid starts a new track. Must be > 0.
	MaxMatchDistance float64
	// MaxDisappeared is how many consecutive unmatched frames a track
	// survives before removal. Must be >= 0; zero removes a track on its
	// first unmatched frame.
	MaxDisappeared int
	// HistoryLen, when positive, keeps up to that many matched centroids per
	// track, exposed through TrackSnapshot.History. Zero disables retention.
	HistoryLen int
}

// Option overrides a session collaborator.
type Option func(*TrackingSession)

// WithMatcher swaps the default greedy matcher for another implementation of
// the same contract (e.g. NewHungarianMatcher for strict optimality).
func WithMatcher(m Matcher) Option {
	return func(s *TrackingSession) { s.matcher = m }
}

// WithLogger injects the logger used for dropped-detection warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *TrackingSession) { s.logger = l }
}

// TrackingSession orchestrates one tracking run: one ProcessFrame call per
// incoming frame. Each frame's matching depends on the state left by the
// previous one, so calls must be strictly ordered and never overlap for a
// single session. A session can be discarded at any frame boundary.
type TrackingSession struct {
	id       uuid.UUID
	cfg      Config
	matcher  Matcher
	registry *TrackRegistry
	logger   *slog.Logger
	frame    uint64
}

// NewTrackingSession validates cfg and builds a session. Construction is the
// only place configuration is checked; everything downstream assumes it is
// sane.
func NewTrackingSession(cfg Config, opts ...Option) (*TrackingSession, error) {
	if cfg.MaxMatchDistance <= 0 {
		return nil, errors.Errorf("max match distance must be positive, got %v", cfg.MaxMatchDistance)
	}
	if cfg.MaxDisappeared < 0 {
		return nil, errors.Errorf("max disappeared must be non-negative, got %d", cfg.MaxDisappeared)
	}
	s := &TrackingSession{
		id:       uuid.New(),
		cfg:      cfg,
		registry: newTrackRegistry(cfg.MaxDisappeared, cfg.HistoryLen),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.matcher == nil {
		s.matcher = NewGreedyMatcher(cfg.MaxMatchDistance)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With(slog.String("session_id", s.id.String()))
	return s, nil
}

// ID returns the session identifier. It is for log correlation only; stable
// object identity lives in integer track ids.
func (s *TrackingSession) ID() uuid.UUID {
	return s.id
}

// TrackCount returns the number of currently live tracks.
func (s *TrackingSession) TrackCount() int {
	return s.registry.Len()
}

// ProcessFrame feeds one frame's detections through matching and registry
// bookkeeping and returns the snapshot of all currently Active and Lost
// tracks. An empty detections slice is valid and only ages existing tracks.
func (s *TrackingSession) ProcessFrame(detections []Detection) Snapshot {
	s.frame++
	detections = s.sanitize(detections)
	assignment := s.matcher.Match(s.registry.Tracks(), detections)
	s.registry.Apply(assignment, detections)
	return s.registry.Snapshot()
}

// sanitize drops detections that cannot participate in matching. Dropping is
// per-detection; the frame itself always proceeds.
func (s *TrackingSession) sanitize(detections []Detection) []Detection {
	invalid := 0
	for _, det := range detections {
		if !det.Valid() {
			invalid++
		}
	}
	if invalid == 0 {
		return detections
	}
	clean := make([]Detection, 0, len(detections)-invalid)
	for i, det := range detections {
		if !det.Valid() {
			s.logger.Warn("dropping detection with non-finite centroid",
				slog.Uint64("frame", s.frame),
				slog.Int("detection_index", i),
			)
			continue
		}
		clean = append(clean, det)
	}
	return clean
}
