package ctrack

import (
	"image"
	"math"
)

type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(x, y, width, height float64) Rectangle {
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

func NewRectFrom(rect image.Rectangle) Rectangle {
	return Rectangle{
		X:      float64(rect.Min.X),
		Y:      float64(rect.Min.Y),
		Width:  float64(rect.Dx()),
		Height: float64(rect.Dy()),
	}
}

// Center returns the geometric center of the rectangle.
func (r Rectangle) Center() Point {
	return Point{
		X: r.X + r.Width/2.0,
		Y: r.Y + r.Height/2.0,
	}
}

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func NewPointFrom(point image.Point) Point {
	return Point{
		X: float64(point.X),
		Y: float64(point.Y),
	}
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Sqrt(math.Pow(p1.X-p2.X, 2) + math.Pow(p1.Y-p2.Y, 2))
}

// IoU calculates Intersection over Union between two rectangles.
func IoU(r1, r2 Rectangle) float64 {
	xA := math.Max(r1.X, r2.X)
	yA := math.Max(r1.Y, r2.Y)
	xB := math.Min(r1.X+r1.Width, r2.X+r2.Width)
	yB := math.Min(r1.Y+r1.Height, r2.Y+r2.Height)

	interArea := math.Max(0, xB-xA) * math.Max(0, yB-yA)
	if interArea == 0 {
		return 0.0
	}

	r1Area := r1.Width * r1.Height
	r2Area := r2.Width * r2.Height

	return interArea / (r1Area + r2Area - interArea)
}
