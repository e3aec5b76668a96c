package collision

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/blazinaj/gamescape-sub001/actor"
)

// DebugDrawer receives the current shape list for rendering. A render
// front-end (raylib, ebiten, a gizmo overlay) implements it; the
// simulation behaves identically whether or not anything draws.
type DebugDrawer interface {
	DrawSphere(center mgl64.Vec3, radius float64, category actor.Category)
	DrawCapsule(bottom, top mgl64.Vec3, radius float64, category actor.Category)
	// DrawLine is used for velocity vectors.
	DrawLine(from, to mgl64.Vec3)
}

// DebugDraw walks a read-only snapshot of the registry in id order and
// hands every shape to the drawer.
func (w *World) DebugDraw(drawer DebugDrawer) {
	ids := make([]string, 0, len(w.objects))
	for id := range w.objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		obj := w.objects[id]
		switch shape := obj.Shape.(type) {
		case actor.Sphere:
			drawer.DrawSphere(obj.WorldCenter(), shape.Radius, obj.Category)
		case actor.Capsule:
			bottom, top, radius := shape.Segment(obj.Position)
			drawer.DrawCapsule(bottom, top, radius, obj.Category)
		}

		if obj.Velocity.Len() > 0 {
			center := obj.WorldCenter()
			drawer.DrawLine(center, center.Add(obj.Velocity))
		}
	}
}
