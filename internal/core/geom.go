// Package core provides fundamental types and utilities shared by the game
// and the platform layer. It has no external dependencies (no Bubble Tea,
// no SQL) so that simulation code stays pure and testable.
package core

// Rect is an axis-aligned bounding box in world units.
// X, Y is the top-left corner; Y grows downwards.
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects reports whether the two rectangles overlap.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks the rectangle by fx*W on each horizontal side and fy*H on
// each vertical side. Negative factors grow it.
func (r Rect) Inset(fx, fy float64) Rect {
	padX := r.W * fx
	padY := r.H * fy
	return Rect{X: r.X + padX, Y: r.Y + padY, W: r.W - padX*2, H: r.H - padY*2}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Countdown decrements a timer by dt and never lets it drop below zero.
func Countdown(timer, dt float64) float64 {
	if timer <= 0 {
		return 0
	}
	timer -= dt
	if timer < 0 {
		return 0
	}
	return timer
}
