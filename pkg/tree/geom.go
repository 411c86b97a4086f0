package tree

import "math"

// Point is a position in space. Planar inputs leave Z at zero, which keeps
// every distance identical to its 2D value.
type Point struct {
	X, Y, Z float64
}

// Pt2 returns the planar point (x, y).
func Pt2(x, y float64) Point { return Point{X: x, Y: y} }

// Pt3 returns the point (x, y, z).
func Pt3(x, y, z float64) Point { return Point{X: x, Y: y, Z: z} }

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Lerp returns a + t*(b-a).
func Lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
	}
}

// SteinerPoints returns n evenly spaced interior points on the segment from
// p to q, ordered from p toward q. The parameter steps by 1/(n+1), so the
// endpoints themselves are never included.
func SteinerPoints(p, q Point, n int) []Point {
	if n <= 0 {
		return nil
	}
	out := make([]Point, n)
	for i := range n {
		out[i] = Lerp(p, q, float64(i+1)/float64(n+1))
	}
	return out
}
