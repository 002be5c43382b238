package ctrack

import "math"

// Detection is one observed object in one frame, as reported by an external
// detector. Any identifier the detector attaches is not trusted across
// frames; stable identity is the tracker's job.
type Detection struct {
	Centroid Point
	BBox     Rectangle
	// Label is the detector's class label. Empty means unlabeled.
	Label string
}

// NewDetection builds a detection whose centroid is the bounding box center.
func NewDetection(bbox Rectangle) Detection {
	return Detection{
		Centroid: bbox.Center(),
		BBox:     bbox,
	}
}

// NewDetectionWithLabel builds a labeled detection from its bounding box.
func NewDetectionWithLabel(bbox Rectangle, label string) Detection {
	return Detection{
		Centroid: bbox.Center(),
		BBox:     bbox,
		Label:    label,
	}
}

// NewDetectionWithCentroid builds a detection with an explicitly measured
// centroid (e.g. a segmentation mask center instead of the box center).
func NewDetectionWithCentroid(centroid Point, bbox Rectangle) Detection {
	return Detection{
		Centroid: centroid,
		BBox:     bbox,
	}
}

// Valid reports whether the detection carries a finite centroid. Detections
// failing this check are dropped before matching.
func (d Detection) Valid() bool {
	if math.IsNaN(d.Centroid.X) || math.IsNaN(d.Centroid.Y) {
		return false
	}
	if math.IsInf(d.Centroid.X, 0) || math.IsInf(d.Centroid.Y, 0) {
		return false
	}
	return true
}
