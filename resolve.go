package collision

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/blazinaj/gamescape-sub001/actor"
	"github.com/blazinaj/gamescape-sub001/intersect"
)

// MoveResult is the outcome of one movement resolution.
type MoveResult struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Blocked  bool
	Sliding  bool
}

// Resolve turns a desired displacement into an actual one. The mover is
// tested discretely at the destination, not swept; per-frame
// displacements are assumed small relative to actor radii.
//
// Obstacles considered are the grid candidates whose category appears
// in the mover's CollidesWith and which are themselves blocking. If the
// destination is obstructed, the remaining displacement is projected
// onto the tangent plane of the deepest contact and retried once: clear
// means the mover slides, obstructed means a full stop. A blocking
// contact zeroes the velocity component along its normal.
//
// A resolve for an unregistered id logs a warning and accepts the move,
// matching Update's tolerance for actor teardown races.
func (w *World) Resolve(id string, current, desired, velocity mgl64.Vec3) MoveResult {
	mover, exists := w.objects[id]
	if !exists {
		w.logger.Warn("resolve for unregistered object", "id", id)
		return MoveResult{Position: desired, Velocity: velocity}
	}

	displacement := desired.Sub(current)
	if displacement.Len() < w.cfg.ContactEpsilon {
		// The common case: idle actors resolve in O(1).
		return MoveResult{Position: current, Velocity: velocity}
	}

	searchRadius := displacement.Len() + mover.Shape.BoundingRadius()
	obstacles := w.blockingObstacles(mover, current, searchRadius)
	if len(obstacles) == 0 {
		return MoveResult{Position: desired, Velocity: velocity}
	}

	primary, hit := deepestContact(mover.Shape, desired, obstacles)
	if !hit {
		return MoveResult{Position: desired, Velocity: velocity}
	}

	normal := primary.Normal
	tangential := displacement.Sub(normal.Mul(displacement.Dot(normal)))
	blockedVelocity := velocity.Sub(normal.Mul(velocity.Dot(normal)))

	if tangential.Len() >= w.cfg.ContactEpsilon {
		slid := current.Add(tangential)
		if _, obstructed := deepestContact(mover.Shape, slid, obstacles); !obstructed {
			return MoveResult{
				Position: slid,
				Velocity: blockedVelocity,
				Sliding:  true,
			}
		}
	}

	// Full stop. If the current position already penetrates an
	// obstacle, nudge out along the contact normal so the actor does
	// not stay wedged.
	position := current
	if resting, overlapping := deepestContact(mover.Shape, current, obstacles); overlapping {
		position = current.Add(resting.Normal.Mul(resting.Depth))
	}

	return MoveResult{
		Position: position,
		Velocity: blockedVelocity,
		Blocked:  true,
	}
}

// blockingObstacles gathers grid candidates around position that can
// block the mover: category listed in the mover's filter, blocking, and
// not the mover itself. The filter is the mover's alone; obstacles are
// never consulted.
func (w *World) blockingObstacles(mover *actor.Object, position mgl64.Vec3, radius float64) []*actor.Object {
	candidates := w.lookup(w.grid.CandidatesNear(position, radius), mover.Id)

	n := 0
	for _, obstacle := range candidates {
		if !obstacle.Blocking() || !mover.CollidesWith.Has(obstacle.Category) {
			continue
		}
		candidates[n] = obstacle
		n++
	}
	return candidates[:n]
}

// deepestContact tests the mover shape at position against every
// obstacle and returns the contact with the largest penetration, the
// primary constraint for the slide response.
func deepestContact(mover actor.Shape, position mgl64.Vec3, obstacles []*actor.Object) (intersect.Contact, bool) {
	var deepest intersect.Contact
	hit := false
	for _, obstacle := range obstacles {
		contact, ok := intersect.Shapes(mover, position, obstacle.Shape, obstacle.Position)
		if !ok {
			continue
		}
		if !hit || contact.Depth > deepest.Depth {
			deepest = contact
			hit = true
		}
	}
	return deepest, hit
}
