package actor

import "github.com/go-gl/mathgl/mgl64"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Expanded returns the AABB grown by margin on every side.
func (a AABB) Expanded(margin float64) AABB {
	m := mgl64.Vec3{margin, margin, margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}

// AABBFromSegment builds the bounds of a radius-padded segment, the
// shape every collision volume reduces to.
func AABBFromSegment(a, b mgl64.Vec3, radius float64) AABB {
	box := AABB{Min: a, Max: a}
	for i := 0; i < 3; i++ {
		if b[i] < box.Min[i] {
			box.Min[i] = b[i]
		}
		if b[i] > box.Max[i] {
			box.Max[i] = b[i]
		}
	}
	return box.Expanded(radius)
}
