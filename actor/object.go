package actor

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrBadObject marks an object that cannot be registered as-is.
var ErrBadObject = errors.New("bad object")

// Object is one participant in the collision world: a player character,
// a spawned enemy, a placed NPC, a harvestable, a static boulder or a
// trigger zone. The world holds a registration record only; the game
// object owning the Object keeps full ownership of it and of UserData.
type Object struct {
	// Id is caller-assigned, unique and stable for the actor's lifetime.
	Id string

	Category Category

	// Shape never changes kind or size after registration.
	Shape Shape

	// Position is the world-space origin; mutate it only through the
	// world's Update so the spatial index stays consistent.
	Position mgl64.Vec3

	// Velocity is advisory. The resolver uses it to bias the slide
	// response; integration stays with the owning actor.
	Velocity mgl64.Vec3

	// Mass is a resolver tie-breaker, not momentum. Zero marks a
	// non-physical object that never blocks anything.
	Mass float64

	// Static objects never move.
	Static bool

	// CollidesWith lists the categories that block this object when it
	// is the mover. The filter is consulted for the mover only: an
	// obstacle does not need to reciprocally list the mover's category.
	CollidesWith CategorySet

	// UserData is an opaque payload owned and interpreted by the
	// registering actor. The collision world never inspects it.
	UserData any
}

// New creates an object with mass 1 and an empty collision filter.
// The caller sets Mass, Static, CollidesWith and UserData as needed
// before registering.
func New(id string, category Category, shape Shape, position mgl64.Vec3) *Object {
	return &Object{
		Id:       id,
		Category: category,
		Shape:    shape,
		Position: position,
		Mass:     1,
	}
}

// Validate checks everything registration depends on. A failing object
// must be rejected before it touches the registry or the spatial index.
func (o *Object) Validate() error {
	if o.Id == "" {
		return fmt.Errorf("%w: empty id", ErrBadObject)
	}
	if !o.Category.Valid() {
		return fmt.Errorf("%w: %q has invalid category %d", ErrBadObject, o.Id, int(o.Category))
	}
	if o.Shape == nil {
		return fmt.Errorf("%w: %q has no shape", ErrBadObject, o.Id)
	}
	if err := o.Shape.Validate(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrBadObject, o.Id, err)
	}
	if !IsFinite(o.Position) {
		return fmt.Errorf("%w: %q has non-finite position %v", ErrBadObject, o.Id, o.Position)
	}
	if math.IsNaN(o.Mass) || o.Mass < 0 {
		return fmt.Errorf("%w: %q has invalid mass %g", ErrBadObject, o.Id, o.Mass)
	}
	return nil
}

// Blocking reports whether the object can obstruct movement or sight.
// Triggers and massless objects are visible to overlap queries but
// never stop anything.
func (o *Object) Blocking() bool {
	return o.Category != CategoryTrigger && o.Mass > 0
}

// WorldCenter is the shape center in world space.
func (o *Object) WorldCenter() mgl64.Vec3 {
	return o.Position.Add(o.Shape.Offset())
}

// AABB is the shape's current world-space bounds.
func (o *Object) AABB() AABB {
	return o.Shape.AABB(o.Position)
}
