package collision

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/blazinaj/gamescape-sub001/actor"
	"github.com/blazinaj/gamescape-sub001/intersect"
)

// ObjectsInRadius returns every registered object whose shape overlaps
// the sphere of the given radius at position, nearest first. Passing
// categories narrows the result to those categories. The query is
// purely informational: detection radii, interaction prompts and
// pathfinding hints all use it, and nothing about it blocks movement.
func (w *World) ObjectsInRadius(position mgl64.Vec3, radius float64, categories ...actor.Category) []*actor.Object {
	filter := actor.NewCategorySet(categories...)

	var out []*actor.Object
	for _, obj := range w.lookup(w.grid.CandidatesNear(position, radius), "") {
		if !filter.Empty() && !filter.Has(obj.Category) {
			continue
		}
		// Exact narrow test; the grid only supplied a superset.
		if obj.WorldCenter().Sub(position).Len() > radius+obj.Shape.BoundingRadius() {
			continue
		}
		out = append(out, obj)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WorldCenter().Sub(position).Len() < out[j].WorldCenter().Sub(position).Len()
	})
	return out
}

// SightResult is the outcome of a line-of-sight cast.
type SightResult struct {
	Clear bool
	// HitPoint and HitID describe the nearest blocking hit when the
	// sight line is not clear.
	HitPoint mgl64.Vec3
	HitID    string
}

// LineOfSight casts from one eye point toward a target, capped at
// maxDistance. Categories in ignore never occlude; callers
// conventionally pass their own category, to avoid self-occlusion, plus
// the trigger category (which the world already skips along with every
// other non-blocking object). The configured SightIgnore categories are
// always added, and a non-positive maxDistance falls back to the
// configured MaxRayDistance. Clear is true iff no qualifying hit lies
// strictly before the target.
func (w *World) LineOfSight(from, to mgl64.Vec3, maxDistance float64, ignore actor.CategorySet) SightResult {
	ignore = ignore.Union(w.sightIgnore)
	if maxDistance <= 0 {
		maxDistance = w.cfg.MaxRayDistance
	}

	span := to.Sub(from)
	distance := span.Len()
	if distance > maxDistance {
		distance = maxDistance
	}
	if distance < w.cfg.ContactEpsilon {
		return SightResult{Clear: true}
	}
	dir := span.Mul(1 / span.Len())
	target := from.Add(dir.Mul(distance))

	best := distance
	hitID := ""
	for _, obj := range w.lookup(w.grid.CandidatesAlong(from, target), "") {
		if ignore.Has(obj.Category) || !obj.Blocking() {
			continue
		}
		t, ok := intersect.RayShape(from, dir, best, obj.Shape, obj.Position)
		if !ok {
			continue
		}
		// Only hits strictly before the target occlude it.
		if t < best-w.cfg.ContactEpsilon {
			best = t
			hitID = obj.Id
		}
	}

	if hitID == "" {
		return SightResult{Clear: true}
	}
	return SightResult{
		HitPoint: from.Add(dir.Mul(best)),
		HitID:    hitID,
	}
}
