// Package intersect holds the narrow-phase math of the collision world:
// pure contact and raycast functions over sphere and capsule volumes.
// Every supported volume is a radius-padded segment, so all pairwise
// tests reduce to a closest-point-between-segments computation followed
// by a radius-sum comparison.
package intersect

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/blazinaj/gamescape-sub001/actor"
)

// Epsilon bounds all degenerate-geometry decisions in this package:
// segments shorter than it are points, contacts shallower than it are
// tangent, directions smaller than it have no usable normal.
const Epsilon = 1e-9

// Contact describes one penetrating overlap. Normal points from the
// obstacle toward the mover; Depth is the penetration along it.
type Contact struct {
	Normal mgl64.Vec3
	Depth  float64
	// Point lies on the obstacle's surface, on the line between the
	// closest core points.
	Point mgl64.Vec3
}

// Shapes tests two placed shapes for overlap. The first shape is the
// mover, the second the obstacle. Exact tangency (distance equal to the
// radii sum) reports no contact, so resting exactly-touching objects
// never jitter.
func Shapes(mover actor.Shape, moverPos mgl64.Vec3, obstacle actor.Shape, obstaclePos mgl64.Vec3) (Contact, bool) {
	a1, a2, ra := mover.Segment(moverPos)
	b1, b2, rb := obstacle.Segment(obstaclePos)
	return Segments(a1, a2, ra, b1, b2, rb)
}

// SphereSphere tests two placed spheres, mover first.
func SphereSphere(a actor.Sphere, pa mgl64.Vec3, b actor.Sphere, pb mgl64.Vec3) (Contact, bool) {
	return Shapes(a, pa, b, pb)
}

// SphereCapsule tests a placed sphere mover against a capsule obstacle.
func SphereCapsule(s actor.Sphere, ps mgl64.Vec3, c actor.Capsule, pc mgl64.Vec3) (Contact, bool) {
	return Shapes(s, ps, c, pc)
}

// CapsuleCapsule tests two placed capsules, mover first.
func CapsuleCapsule(a actor.Capsule, pa mgl64.Vec3, b actor.Capsule, pb mgl64.Vec3) (Contact, bool) {
	return Shapes(a, pa, b, pb)
}

// Segments is the shared core: overlap between two radius-padded
// segments. Coincident cores have no separating direction, so the
// normal falls back to +X deterministically.
func Segments(a1, a2 mgl64.Vec3, ra float64, b1, b2 mgl64.Vec3, rb float64) (Contact, bool) {
	ca, cb := ClosestPointsSegments(a1, a2, b1, b2)

	delta := ca.Sub(cb)
	dist := delta.Len()
	sum := ra + rb
	if dist >= sum {
		return Contact{}, false
	}

	normal := mgl64.Vec3{1, 0, 0}
	if dist > Epsilon {
		normal = delta.Mul(1 / dist)
	}

	return Contact{
		Normal: normal,
		Depth:  sum - dist,
		Point:  cb.Add(normal.Mul(rb)),
	}, true
}

// ClosestPointsSegments returns the pair of closest points between the
// segments p1..q1 and p2..q2. Degenerate (point) segments are handled.
func ClosestPointsSegments(p1, q1, p2, q2 mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a <= Epsilon && e <= Epsilon:
		// Both segments are points.
	case a <= Epsilon:
		t = clamp01(f / e)
	case e <= Epsilon:
		s = clamp01(-d1.Dot(r) / a)
	default:
		c := d1.Dot(r)
		b := d1.Dot(d2)
		denom := a*e - b*b

		// Parallel segments leave s at 0, any point works.
		if denom > Epsilon {
			s = clamp01((b*f - c*e) / denom)
		}

		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = clamp01(-c / a)
		} else if t > 1 {
			t = 1
			s = clamp01((b - c) / a)
		}
	}

	return p1.Add(d1.Mul(s)), p2.Add(d2.Mul(t))
}

// ClosestPointSegment returns the point on segment a..b closest to p.
func ClosestPointSegment(p, a, b mgl64.Vec3) mgl64.Vec3 {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom <= Epsilon {
		return a
	}
	t := clamp01(p.Sub(a).Dot(ab) / denom)
	return a.Add(ab.Mul(t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
