// Package snap adjusts element positions during interactive drags so that
// edges and centers lock onto page bounds, page center lines and sibling
// element edges. It is pure computation: guides are returned to the caller
// for rendering and never stored, so clearing them when the gesture ends is
// the caller's concern.
package snap

import (
	"math"

	"github.com/yamaryu999/pdf-editor/internal/document"
)

// DefaultThreshold is the snap distance in page-space points.
const DefaultThreshold = 6.0

// Orientation distinguishes vertical from horizontal guide lines.
type Orientation int

const (
	// Vertical guides run the full page height at a fixed x offset.
	Vertical Orientation = iota
	// Horizontal guides run the full page width at a fixed y offset.
	Horizontal
)

// Guide is an ephemeral alignment line to draw while a snap rule is active.
type Guide struct {
	Orientation Orientation
	Offset      float64
}

// Engine computes snapped drag positions against a page.
type Engine struct {
	threshold float64
}

// NewEngine creates an engine with the default threshold.
func NewEngine() *Engine {
	return &Engine{threshold: DefaultThreshold}
}

// NewEngineWithThreshold creates an engine with a custom threshold.
// Non-positive values fall back to the default.
func NewEngineWithThreshold(threshold float64) *Engine {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Engine{threshold: threshold}
}

// Snap takes the candidate position of an element mid-drag (size fixed
// during a pure move) and returns the possibly-adjusted position plus the
// guides that fired. Axes are evaluated independently: per axis the first
// matching rule wins, in the order page center, near edge, far edge, then
// sibling edges. Invisible siblings are skipped; locked ones are not.
func (e *Engine) Snap(page *document.Page, elementID string, x, y, width, height float64) (float64, float64, []Guide) {
	if page == nil {
		return x, y, nil
	}

	var guides []Guide
	centerX := page.Width / 2
	centerY := page.Height / 2

	snappedX := false
	switch {
	case math.Abs((x+width/2)-centerX) < e.threshold:
		x = centerX - width/2
		guides = append(guides, Guide{Vertical, centerX})
		snappedX = true
	case math.Abs(x) < e.threshold:
		x = 0
		guides = append(guides, Guide{Vertical, 0})
		snappedX = true
	case math.Abs((x+width)-page.Width) < e.threshold:
		x = page.Width - width
		guides = append(guides, Guide{Vertical, page.Width})
		snappedX = true
	}

	snappedY := false
	switch {
	case math.Abs((y+height/2)-centerY) < e.threshold:
		y = centerY - height/2
		guides = append(guides, Guide{Horizontal, centerY})
		snappedY = true
	case math.Abs(y) < e.threshold:
		y = 0
		guides = append(guides, Guide{Horizontal, 0})
		snappedY = true
	case math.Abs((y+height)-page.Height) < e.threshold:
		y = page.Height - height
		guides = append(guides, Guide{Horizontal, page.Height})
		snappedY = true
	}

	for _, other := range page.Elements {
		base := other.Base()
		if base.ID == elementID || !base.Visible {
			continue
		}

		if !snappedX {
			targets := []float64{base.Rect.X, base.Rect.CenterX(), base.Rect.Right()}
			for _, target := range targets {
				if math.Abs(x-target) < e.threshold {
					x = target
					guides = append(guides, Guide{Vertical, target})
					snappedX = true
					break
				}
				if math.Abs((x+width)-target) < e.threshold {
					x = target - width
					guides = append(guides, Guide{Vertical, target})
					snappedX = true
					break
				}
			}
		}

		if !snappedY {
			targets := []float64{base.Rect.Y, base.Rect.CenterY(), base.Rect.Bottom()}
			for _, target := range targets {
				if math.Abs(y-target) < e.threshold {
					y = target
					guides = append(guides, Guide{Horizontal, target})
					snappedY = true
					break
				}
				if math.Abs((y+height)-target) < e.threshold {
					y = target - height
					guides = append(guides, Guide{Horizontal, target})
					snappedY = true
					break
				}
			}
		}

		if snappedX && snappedY {
			break
		}
	}

	return x, y, guides
}
