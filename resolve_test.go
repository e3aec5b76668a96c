package collision

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/blazinaj/gamescape-sub001/actor"
)

// newMover registers a character-category sphere mover that collides
// with static geometry and other characters.
func newMover(t *testing.T, w *World, id string, position mgl64.Vec3, radius float64) *actor.Object {
	t.Helper()
	mover := actor.New(id, actor.CategoryCharacter, actor.Sphere{Radius: radius}, position)
	mover.CollidesWith = actor.NewCategorySet(actor.CategoryStatic, actor.CategoryCharacter, actor.CategoryEnemy)
	if err := w.Register(mover); err != nil {
		t.Fatalf("Register mover failed: %v", err)
	}
	return mover
}

func TestResolveZeroDisplacement(t *testing.T) {
	w := newTestWorld()
	newMover(t, w, "mover", mgl64.Vec3{3, 0, 0}, 0.5)

	// Even overlapping an obstacle, no displacement means no response.
	if err := w.Register(staticSphere("rock", mgl64.Vec3{3.5, 0, 0}, 1)); err != nil {
		t.Fatalf("Register rock failed: %v", err)
	}

	p := mgl64.Vec3{3, 0, 0}
	v := mgl64.Vec3{1, 2, 3}
	result := w.Resolve("mover", p, p, v)

	if !vec3Near(result.Position, p) || result.Blocked || result.Sliding {
		t.Errorf("Resolve(p, p) = %+v, want identity", result)
	}
	if !vec3Near(result.Velocity, v) {
		t.Errorf("Velocity = %v, want unchanged %v", result.Velocity, v)
	}
}

func TestResolveUnobstructed(t *testing.T) {
	w := newTestWorld()
	newMover(t, w, "mover", mgl64.Vec3{0, 0, 0}, 0.5)

	result := w.Resolve("mover", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0, 0})

	if result.Blocked || result.Sliding {
		t.Errorf("empty scene produced %+v", result)
	}
	if !vec3Near(result.Position, mgl64.Vec3{1, 0, 0}) {
		t.Errorf("Position = %v, want the desired position", result.Position)
	}
	if !vec3Near(result.Velocity, mgl64.Vec3{1, 0, 0}) {
		t.Errorf("Velocity = %v, want unchanged", result.Velocity)
	}
}

// The scenario from the engine's original design review: a static unit
// sphere at the origin, a half-unit mover approaching head on. The move
// must stop on the combined-radius sphere, never inside it.
func TestResolveHeadOnBlock(t *testing.T) {
	w := newTestWorld()
	if err := w.Register(staticSphere("obstacle", mgl64.Vec3{0, 0, 0}, 1)); err != nil {
		t.Fatalf("Register obstacle failed: %v", err)
	}
	newMover(t, w, "mover", mgl64.Vec3{3, 0, 0}, 0.5)

	position := mgl64.Vec3{3, 0, 0}
	step := mgl64.Vec3{-0.25, 0, 0}
	blocked := false
	for i := 0; i < 20; i++ {
		result := w.Resolve("mover", position, position.Add(step), step)
		if result.Sliding {
			t.Fatalf("head-on approach reported sliding at %v", position)
		}
		if result.Blocked {
			blocked = true
			break
		}
		position = result.Position
		if err := w.Update("mover", position); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	if !blocked {
		t.Fatal("mover was never blocked")
	}
	if dist := position.Len(); dist < 1.5-1e-6 {
		t.Errorf("mover stopped at distance %g, inside the combined radius 1.5", dist)
	}
	if dist := position.Len(); dist > 1.75+1e-6 {
		t.Errorf("mover stopped at distance %g, a full step short of contact", dist)
	}
}

func TestResolveSlideAlongWall(t *testing.T) {
	w := newTestWorld()

	// The mover presses obliquely into an obstacle face whose normal at
	// the contact is exactly -X, so the slide must strip the X
	// component of the move and keep the Z component intact.
	if err := w.Register(staticSphere("face", mgl64.Vec3{1.5, 0, 0.5}, 1)); err != nil {
		t.Fatalf("Register obstacle failed: %v", err)
	}
	newMover(t, w, "mover", mgl64.Vec3{-0.2, 0, 0}, 0.5)

	current := mgl64.Vec3{-0.2, 0, 0}
	desired := mgl64.Vec3{0.3, 0, 0.5}
	velocity := mgl64.Vec3{1, 0, 1}
	result := w.Resolve("mover", current, desired, velocity)

	if !result.Sliding || result.Blocked {
		t.Fatalf("oblique wall contact = %+v, want sliding", result)
	}

	moved := result.Position.Sub(current)
	if math.Abs(moved.X()) > 1e-6 {
		t.Errorf("slide displacement %v has a component into the wall", moved)
	}
	// Tangential speed is preserved: the Z component of the desired
	// displacement survives.
	if math.Abs(moved.Z()-0.5) > 1e-6 {
		t.Errorf("tangential displacement = %g, want 0.5", moved.Z())
	}
	if math.Abs(result.Velocity.X()) > 1e-6 {
		t.Errorf("velocity %v keeps its blocked component", result.Velocity)
	}
	if math.Abs(result.Velocity.Z()-1) > 1e-6 {
		t.Errorf("velocity %v lost its tangential component", result.Velocity)
	}
}

func TestResolveCornerFullStop(t *testing.T) {
	w := newTestWorld()

	// Two obstacles forming a wedge the mover is pushed into.
	if err := w.Register(staticSphere("left", mgl64.Vec3{1.2, 0, 0.8}, 1)); err != nil {
		t.Fatal(err)
	}
	if err := w.Register(staticSphere("right", mgl64.Vec3{1.2, 0, -0.8}, 1)); err != nil {
		t.Fatal(err)
	}
	newMover(t, w, "mover", mgl64.Vec3{-0.4, 0, 0}, 0.5)

	current := mgl64.Vec3{-0.4, 0, 0}
	result := w.Resolve("mover", current, mgl64.Vec3{0.6, 0, 0}, mgl64.Vec3{2, 0, 0})

	if !result.Blocked || result.Sliding {
		t.Fatalf("wedge contact = %+v, want a full stop", result)
	}
	if !vec3Near(result.Position, current) {
		t.Errorf("Position = %v, want the untouched current position", result.Position)
	}
}

func TestResolveNoInterpenetration(t *testing.T) {
	w := newTestWorld()

	obstacles := []mgl64.Vec3{
		{2, 0, 0}, {2, 0, 2}, {0, 0, 2}, {-2, 0, 1}, {1, 0, -2},
	}
	for i, p := range obstacles {
		if err := w.Register(staticSphere(wallID(i), p, 1)); err != nil {
			t.Fatal(err)
		}
	}
	mover := newMover(t, w, "mover", mgl64.Vec3{-3, 0, -3}, 0.5)

	// Drive the mover toward the cluster from many directions and
	// verify the resolved position never penetrates a blocker.
	position := mover.Position
	for step := 0; step < 200; step++ {
		angle := float64(step) * 0.37
		desired := position.Add(mgl64.Vec3{math.Cos(angle) * 0.4, 0, math.Sin(angle) * 0.4})
		result := w.Resolve("mover", position, desired, mgl64.Vec3{})

		for _, p := range obstacles {
			if dist := result.Position.Sub(p).Len(); dist < 1.5-1e-6 {
				t.Fatalf("step %d: resolved position %v is %g from obstacle %v, inside combined radius",
					step, result.Position, dist, p)
			}
		}

		position = result.Position
		if err := w.Update("mover", position); err != nil {
			t.Fatal(err)
		}
	}
}

func TestResolveTriggersAndMasslessNeverBlock(t *testing.T) {
	w := newTestWorld()

	zone := actor.New("zone", actor.CategoryTrigger, actor.Sphere{Radius: 2}, mgl64.Vec3{1, 0, 0})
	if err := w.Register(zone); err != nil {
		t.Fatal(err)
	}
	marker := actor.New("marker", actor.CategoryStatic, actor.Sphere{Radius: 2}, mgl64.Vec3{2, 0, 0})
	marker.Mass = 0
	if err := w.Register(marker); err != nil {
		t.Fatal(err)
	}

	mover := newMover(t, w, "mover", mgl64.Vec3{-2, 0, 0}, 0.5)
	mover.CollidesWith = mover.CollidesWith.With(actor.CategoryTrigger)

	result := w.Resolve("mover", mgl64.Vec3{-2, 0, 0}, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{})
	if result.Blocked || result.Sliding {
		t.Errorf("non-blocking obstacles produced %+v", result)
	}
	if !vec3Near(result.Position, mgl64.Vec3{2, 0, 0}) {
		t.Errorf("Position = %v, want the desired position", result.Position)
	}
}

func TestResolveHonorsMoverFilterOnly(t *testing.T) {
	w := newTestWorld()

	// The obstacle's own filter is empty; only the mover's filter
	// decides whether the obstacle blocks.
	if err := w.Register(staticSphere("wall", mgl64.Vec3{1, 0, 0}, 1)); err != nil {
		t.Fatal(err)
	}

	ghost := actor.New("ghost", actor.CategoryCharacter, actor.Sphere{Radius: 0.5}, mgl64.Vec3{-1, 0, 0})
	// No CollidesWith: walks through everything.
	if err := w.Register(ghost); err != nil {
		t.Fatal(err)
	}

	result := w.Resolve("ghost", mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{})
	if result.Blocked || result.Sliding {
		t.Errorf("mover with empty filter was constrained: %+v", result)
	}
}

func TestResolveCapsuleMoverAgainstCapsuleObstacle(t *testing.T) {
	w := newTestWorld()

	pillar := actor.New("pillar", actor.CategoryStatic, actor.Capsule{Radius: 0.5, Height: 2}, mgl64.Vec3{2, 0, 0})
	pillar.Static = true
	if err := w.Register(pillar); err != nil {
		t.Fatal(err)
	}

	mover := actor.New("mover", actor.CategoryCharacter, actor.Capsule{Radius: 0.4, Height: 1.2}, mgl64.Vec3{0, 0, 0})
	mover.CollidesWith = actor.NewCategorySet(actor.CategoryStatic)
	if err := w.Register(mover); err != nil {
		t.Fatal(err)
	}

	result := w.Resolve("mover", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1.5, 0, 0}, mgl64.Vec3{})
	if !result.Blocked {
		t.Fatalf("capsule mover passed through a pillar: %+v", result)
	}
}

func TestResolveUnknownIDPassesThrough(t *testing.T) {
	w := newTestWorld()
	if err := w.Register(staticSphere("wall", mgl64.Vec3{1, 0, 0}, 1)); err != nil {
		t.Fatal(err)
	}

	result := w.Resolve("ghost", mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 0, 0})
	if result.Blocked || result.Sliding || !vec3Near(result.Position, mgl64.Vec3{3, 0, 0}) {
		t.Errorf("unknown mover = %+v, want an accepted move", result)
	}
}

func wallID(i int) string {
	return fmt.Sprintf("wall-%d", i)
}
