package actor

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind represents the type of collision shape
type ShapeKind int

const (
	ShapeKindSphere ShapeKind = iota
	ShapeKindCapsule
)

// ErrBadShape marks a shape whose dimensions cannot describe a volume
// (non-positive radius, negative height, non-finite values).
var ErrBadShape = errors.New("bad shape")

// Shape is the interface all collision volumes implement. Every shape
// reduces to a radius-padded core segment, a sphere being the degenerate
// zero-length case. This is what lets a single segment-segment
// closest-point computation serve all pairwise overlap tests.
type Shape interface {
	Kind() ShapeKind
	// Offset is the shape center in the owning object's local space.
	Offset() mgl64.Vec3
	// BoundingRadius is a conservative radius around the owner's origin
	// that fully contains the shape, offset included. Broad-phase only.
	BoundingRadius() float64
	// Segment returns the world-space core segment and padding radius
	// for an owner positioned at position.
	Segment(position mgl64.Vec3) (a, b mgl64.Vec3, radius float64)
	// AABB returns the world-space bounds for an owner at position.
	AABB(position mgl64.Vec3) AABB
	Validate() error
}

// Sphere is a spherical collision volume offset from the owner's origin.
type Sphere struct {
	Center mgl64.Vec3 // local offset from the owning object's origin
	Radius float64
}

func (s Sphere) Kind() ShapeKind { return ShapeKindSphere }

func (s Sphere) Offset() mgl64.Vec3 { return s.Center }

func (s Sphere) BoundingRadius() float64 {
	return s.Radius + s.Center.Len()
}

func (s Sphere) Segment(position mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3, float64) {
	c := position.Add(s.Center)
	return c, c, s.Radius
}

func (s Sphere) AABB(position mgl64.Vec3) AABB {
	c := position.Add(s.Center)
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: c.Sub(r), Max: c.Add(r)}
}

func (s Sphere) Validate() error {
	if !isFinite(s.Center) || math.IsNaN(s.Radius) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("%w: sphere has non-finite values", ErrBadShape)
	}
	if s.Radius <= 0 {
		return fmt.Errorf("%w: sphere radius %g must be positive", ErrBadShape, s.Radius)
	}
	return nil
}

// Capsule is a vertically aligned capsule: a core segment of length
// Height along the Y axis, padded by Radius. Height is the distance
// between the two hemisphere centers, so a zero-height capsule behaves
// exactly like a sphere.
type Capsule struct {
	Center mgl64.Vec3 // local offset from the owning object's origin
	Radius float64
	Height float64
}

func (c Capsule) Kind() ShapeKind { return ShapeKindCapsule }

func (c Capsule) Offset() mgl64.Vec3 { return c.Center }

func (c Capsule) BoundingRadius() float64 {
	return c.Radius + c.Height/2 + c.Center.Len()
}

func (c Capsule) Segment(position mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3, float64) {
	center := position.Add(c.Center)
	half := mgl64.Vec3{0, c.Height / 2, 0}
	return center.Sub(half), center.Add(half), c.Radius
}

func (c Capsule) AABB(position mgl64.Vec3) AABB {
	center := position.Add(c.Center)
	ext := mgl64.Vec3{c.Radius, c.Radius + c.Height/2, c.Radius}
	return AABB{Min: center.Sub(ext), Max: center.Add(ext)}
}

func (c Capsule) Validate() error {
	if !isFinite(c.Center) || math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0) ||
		math.IsNaN(c.Height) || math.IsInf(c.Height, 0) {
		return fmt.Errorf("%w: capsule has non-finite values", ErrBadShape)
	}
	if c.Radius <= 0 {
		return fmt.Errorf("%w: capsule radius %g must be positive", ErrBadShape, c.Radius)
	}
	if c.Height < 0 {
		return fmt.Errorf("%w: capsule height %g must not be negative", ErrBadShape, c.Height)
	}
	return nil
}

func isFinite(v mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return false
		}
	}
	return true
}

// IsFinite reports whether every component of v is a finite number.
// Positions failing this check must never reach the spatial index.
func IsFinite(v mgl64.Vec3) bool {
	return isFinite(v)
}
