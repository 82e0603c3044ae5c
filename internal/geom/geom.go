// Package geom provides the page-space geometry primitives shared by the
// document model, the snap engine and the PDF adapters. Coordinates are in
// PDF points with the origin at the top-left of the page, matching the 1:1
// raster previews produced at import time.
package geom

// Rect is an axis-aligned rectangle in page-space points.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect returns a rectangle with the given origin and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// CenterX returns the x coordinate of the horizontal center.
func (r Rect) CenterX() float64 {
	return r.X + r.Width/2
}

// CenterY returns the y coordinate of the vertical center.
func (r Rect) CenterY() float64 {
	return r.Y + r.Height/2
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the left/top edges are inside, right/bottom edges are outside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Translate returns a copy of the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}
