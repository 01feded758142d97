package geom

import "math"

// IsSimple reports whether the open polyline through pts has no
// self-intersection: no two non-adjacent segments touch or cross, and no two
// adjacent segments fold back onto each other.
func IsSimple(pts []Point) bool {
	n := len(pts) - 1 // segment count
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := pts[i], pts[i+1]
			c, d := pts[j], pts[j+1]
			if j == i+1 {
				// Adjacent segments share point b == c. They only violate
				// simplicity when collinear and doubling back.
				if cross(a, b, d) == 0 && dot(a, b, d) < 0 {
					return false
				}
				continue
			}
			if segmentsIntersect(a, b, c, d) {
				return false
			}
		}
	}
	return true
}

// segmentsIntersect reports whether the closed segments ab and cd share any
// point. Standard orientation test with collinear-overlap handling.
func segmentsIntersect(a, b, c, d Point) bool {
	d1 := sign(cross(c, d, a))
	d2 := sign(cross(c, d, b))
	d3 := sign(cross(a, b, c))
	d4 := sign(cross(a, b, d))

	if d1 != d2 && d3 != d4 {
		return true
	}
	if d1 == 0 && onSegment(c, d, a) {
		return true
	}
	if d2 == 0 && onSegment(c, d, b) {
		return true
	}
	if d3 == 0 && onSegment(a, b, c) {
		return true
	}
	if d4 == 0 && onSegment(a, b, d) {
		return true
	}
	return false
}

// dot returns (b-a) · (d-b), negative when the path a→b→d reverses direction.
func dot(a, b, d Point) float64 {
	return (b.X-a.X)*(d.X-b.X) + (b.Y-a.Y)*(d.Y-b.Y)
}

// cross returns the z component of (b-a) × (p-a).
func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// onSegment reports whether p, known collinear with ab, lies within the
// bounding box of ab.
func onSegment(a, b, p Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
