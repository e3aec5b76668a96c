// Package collision is the spatial substrate of the game: it owns the
// positions and shapes of every dynamic and static actor and answers
// the movement, overlap and sight queries the gameplay systems issue
// each simulation tick.
//
// The package never drives time forward. Actor-owning code registers
// objects, pushes position updates once per frame, and calls Resolve,
// ObjectsInRadius and LineOfSight; everything here is a bounded
// synchronous computation over spatial-grid candidates. All access is
// expected to happen on the game-loop goroutine.
package collision

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/blazinaj/gamescape-sub001/actor"
)

// ErrDuplicateID is returned when registering an id that is already
// present. The existing registration is left untouched.
var ErrDuplicateID = errors.New("duplicate id")

// ErrBadPosition is returned by Update for non-finite positions, which
// would otherwise poison spatial-grid buckets.
var ErrBadPosition = errors.New("bad position")

// World is the object registry plus its broad-phase grid. It is a pure
// index over actor-owned objects, not a container of game objects:
// unregistering drops the record and nothing else.
type World struct {
	objects map[string]*actor.Object
	grid    *SpatialGrid
	cfg     Config
	logger  *log.Logger

	// sightIgnore is cfg.SightIgnore folded into a set once.
	sightIgnore actor.CategorySet

	// Events reports trigger-zone overlaps; see ProcessTriggers.
	Events Events
}

// NewWorld creates a world with the given tuning. A nil logger gets a
// default stderr logger.
func NewWorld(cfg Config, logger *log.Logger) *World {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "collision"})
	}

	return &World{
		objects:     make(map[string]*actor.Object),
		grid:        NewSpatialGrid(cfg.CellSize, cfg.GridCells),
		cfg:         cfg,
		logger:      logger,
		sightIgnore: actor.NewCategorySet(cfg.SightIgnore...),
		Events:      NewEvents(),
	}
}

// Register inserts the object into the registry and the spatial grid.
// A second registration under the same id fails with ErrDuplicateID; an
// invalid object fails with actor.ErrBadObject. Either way the registry
// is left exactly as it was, and the calling actor can retry with
// corrected data or proceed without collision participation.
func (w *World) Register(obj *actor.Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	if _, exists := w.objects[obj.Id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, obj.Id)
	}

	w.objects[obj.Id] = obj
	w.grid.Insert(obj.Id, obj.Shape, obj.Position)
	return nil
}

// Unregister removes the object. It is idempotent: teardown order
// during actor disposal is not guaranteed, so a second call (or a call
// for an id that never existed) is a silent no-op.
func (w *World) Unregister(id string) {
	obj, exists := w.objects[id]
	if !exists {
		return
	}

	w.grid.Remove(id, obj.Shape, obj.Position)
	delete(w.objects, id)
	w.Events.dropPairs(id)
}

// Update moves the object to position and records its advisory
// velocity, relocating it within the grid if it crossed a cell
// boundary. An unknown id is a warning, not an error: a stray late
// update racing actor teardown must never break the frame. A non-finite
// position is rejected and the object is left where it was.
func (w *World) Update(id string, position mgl64.Vec3, velocity ...mgl64.Vec3) error {
	obj, exists := w.objects[id]
	if !exists {
		w.logger.Warn("update for unregistered object", "id", id)
		return nil
	}
	if !actor.IsFinite(position) {
		return fmt.Errorf("%w: %q update to %v", ErrBadPosition, id, position)
	}

	w.grid.Relocate(id, obj.Shape, obj.Position, position)
	obj.Position = position
	if len(velocity) > 0 {
		obj.Velocity = velocity[0]
	}
	return nil
}

// Get returns the registered object, or nil.
func (w *World) Get(id string) *actor.Object {
	return w.objects[id]
}

// Count returns the number of registered objects.
func (w *World) Count() int {
	return len(w.objects)
}

// Config returns the tuning the world was built with.
func (w *World) Config() Config {
	return w.cfg
}

// lookup gathers registered objects for a candidate id list, sorted by
// id so every query iterates candidates in a deterministic order.
func (w *World) lookup(ids []string, skip string) []*actor.Object {
	sort.Strings(ids)

	out := make([]*actor.Object, 0, len(ids))
	for _, id := range ids {
		if id == skip {
			continue
		}
		if obj, ok := w.objects[id]; ok {
			out = append(out, obj)
		}
	}
	return out
}
