package geom

import "math"

// Rect is an axis-aligned rectangle in world units. W/H may be negative for
// in-progress drafts; call Normalized before using containment tests.
type Rect struct {
	X, Y, W, H float64
}

// Normalized returns an equivalent rect with non-negative extents.
func (r Rect) Normalized() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

func (r Rect) Overlaps(o Rect) bool {
	return !(o.X > r.X+r.W || o.X+o.W < r.X || o.Y > r.Y+r.H || o.Y+o.H < r.Y)
}

// SegmentDistance returns the distance from p to the segment a-b.
func SegmentDistance(p, a, b Point) float64 {
	cx, cy := b.X-a.X, b.Y-a.Y
	length := cx*cx + cy*cy
	if length == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*cx + (p.Y-a.Y)*cy) / length
	t = math.Max(0, math.Min(1, t))
	return p.Dist(Point{a.X + cx*t, a.Y + cy*t})
}

func ccw(a, b, c Point) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

// SegmentsIntersect reports whether segments a1-a2 and b1-b2 cross.
func SegmentsIntersect(a1, a2, b1, b2 Point) bool {
	return ccw(a1, b1, b2) != ccw(a2, b1, b2) && ccw(a1, a2, b1) != ccw(a1, a2, b2)
}

// SegmentIntersectsRect reports whether the segment a-b touches r: either an
// endpoint lies inside or the segment crosses one of the four edges.
func SegmentIntersectsRect(a, b Point, r Rect) bool {
	r = r.Normalized()
	if r.Contains(a) || r.Contains(b) {
		return true
	}
	tl := Point{r.X, r.Y}
	tr := Point{r.X + r.W, r.Y}
	br := Point{r.X + r.W, r.Y + r.H}
	bl := Point{r.X, r.Y + r.H}
	return SegmentsIntersect(a, b, tl, tr) ||
		SegmentsIntersect(a, b, tr, br) ||
		SegmentsIntersect(a, b, br, bl) ||
		SegmentsIntersect(a, b, bl, tl)
}

// RotateInto expresses p in the local frame of a rect anchored at origin with
// the given rotation: inverse-rotate the offset about origin.
func RotateInto(p, origin Point, rotation float64) Point {
	dx, dy := p.X-origin.X, p.Y-origin.Y
	c, s := math.Cos(-rotation), math.Sin(-rotation)
	return Point{dx*c - dy*s, dx*s + dy*c}
}
