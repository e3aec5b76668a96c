package intersect

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/blazinaj/gamescape-sub001/actor"
)

// RayShape casts a ray against a placed shape. dir must be normalized.
// The hit distance is along dir, in [0, maxDist]. A ray starting inside
// the volume hits at distance 0.
func RayShape(origin, dir mgl64.Vec3, maxDist float64, shape actor.Shape, position mgl64.Vec3) (float64, bool) {
	a, b, r := shape.Segment(position)
	return RaySegment(origin, dir, maxDist, a, b, r)
}

// RaySphere casts a ray against a sphere of the given center and radius.
func RaySphere(origin, dir mgl64.Vec3, maxDist float64, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	c := oc.Dot(oc) - radius*radius
	if c < 0 {
		// Origin inside the sphere.
		return 0, true
	}

	b := oc.Dot(dir)
	if b > 0 {
		// Sphere is behind the origin.
		return 0, false
	}

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	t := -b - math.Sqrt(disc)
	if t < 0 {
		t = 0
	}
	if t > maxDist {
		return 0, false
	}
	return t, true
}

// RayCapsule casts a ray against a placed capsule.
func RayCapsule(origin, dir mgl64.Vec3, maxDist float64, capsule actor.Capsule, position mgl64.Vec3) (float64, bool) {
	a, b, r := capsule.Segment(position)
	return RaySegment(origin, dir, maxDist, a, b, r)
}

// RaySegment casts a ray against a radius-padded segment: an infinite
// cylinder around a..b clipped to the segment span, closed by sphere
// caps at both ends.
func RaySegment(origin, dir mgl64.Vec3, maxDist float64, a, b mgl64.Vec3, radius float64) (float64, bool) {
	ba := b.Sub(a)
	baba := ba.Dot(ba)
	if baba <= Epsilon {
		return RaySphere(origin, dir, maxDist, a, radius)
	}

	// Origin inside the volume hits immediately.
	if ClosestPointSegment(origin, a, b).Sub(origin).Len() < radius {
		return 0, true
	}

	oa := origin.Sub(a)
	bard := ba.Dot(dir)
	baoa := ba.Dot(oa)

	k2 := baba - bard*bard
	k1 := baba*dir.Dot(oa) - baoa*bard
	k0 := baba*oa.Dot(oa) - baoa*baoa - radius*radius*baba

	// k2 vanishes when the ray runs parallel to the axis; only the end
	// caps can be hit then.
	if k2 > Epsilon {
		h := k1*k1 - k2*k0
		if h >= 0 {
			t := (-k1 - math.Sqrt(h)) / k2
			if t >= 0 && t <= maxDist {
				y := baoa + t*bard
				if y >= 0 && y <= baba {
					return t, true
				}
			}
		}
	}

	hit := false
	best := maxDist
	for _, end := range [2]mgl64.Vec3{a, b} {
		if t, ok := RaySphere(origin, dir, best, end, radius); ok {
			best = t
			hit = true
		}
	}
	return best, hit
}
