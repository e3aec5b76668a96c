package main

import (
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	collision "github.com/blazinaj/gamescape-sub001"
	"github.com/blazinaj/gamescape-sub001/actor"
)

// asciiDrawer prints each shape instead of rendering it; enough to see
// what the world holds at a given tick.
type asciiDrawer struct{}

func (asciiDrawer) DrawSphere(center mgl64.Vec3, radius float64, category actor.Category) {
	fmt.Printf("  sphere  %-12s center=(%6.2f, %5.2f, %6.2f) r=%.2f\n",
		category, center.X(), center.Y(), center.Z(), radius)
}

func (asciiDrawer) DrawCapsule(bottom, top mgl64.Vec3, radius float64, category actor.Category) {
	fmt.Printf("  capsule %-12s bottom=(%6.2f, %5.2f, %6.2f) top=(%6.2f, %5.2f, %6.2f) r=%.2f\n",
		category, bottom.X(), bottom.Y(), bottom.Z(), top.X(), top.Y(), top.Z(), radius)
}

func (asciiDrawer) DrawLine(from, to mgl64.Vec3) {
	fmt.Printf("  line    velocity      from=(%6.2f, %5.2f, %6.2f) to=(%6.2f, %5.2f, %6.2f)\n",
		from.X(), from.Y(), from.Z(), to.X(), to.Y(), to.Z())
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "playground",
		ReportTimestamp: false,
	})

	cfg := collision.DefaultConfig()
	if len(os.Args) > 1 {
		loaded, err := collision.LoadConfig(os.Args[1])
		if err != nil {
			logger.Fatal("load config", "err", err)
		}
		cfg = loaded
	}
	world := collision.NewWorld(cfg, logger)

	// Hot reload is development sugar; a missing watcher is not fatal.
	var reloads chan collision.Config
	if len(os.Args) > 1 {
		watcher, err := collision.WatchConfig(os.Args[1])
		if err != nil {
			logger.Warn("config watcher unavailable", "err", err)
		} else {
			defer watcher.Close()
			reloads = watcher.Configs
		}
	}

	setupScene(world, logger)

	world.Events.Subscribe(collision.TRIGGER_ENTER, func(e collision.Event) {
		logger.Info("entered zone", "zone", e.TriggerID, "who", e.OtherID)
	})
	world.Events.Subscribe(collision.TRIGGER_EXIT, func(e collision.Event) {
		logger.Info("left zone", "zone", e.TriggerID, "who", e.OtherID)
	})

	const (
		dt    = 1.0 / 60.0
		ticks = 600
	)

	player := world.Get("player")
	playerVelocity := mgl64.Vec3{2.5, 0, 0.4}

	for tick := 0; tick < ticks; tick++ {
		select {
		case next := <-reloads:
			logger.Info("config reloaded", "cell_size", next.CellSize)
		default:
		}

		// Player pushes east through the boulder field.
		desired := player.Position.Add(playerVelocity.Mul(dt))
		moved := world.Resolve("player", player.Position, desired, playerVelocity)
		if err := world.Update("player", moved.Position, moved.Velocity); err != nil {
			logger.Error("player update", "err", err)
			return
		}
		playerVelocity = moved.Velocity
		if moved.Blocked {
			// Pick a new heading when walled in.
			playerVelocity = mgl64.Vec3{0.4, 0, 2.5}
		}

		patrol(world, "wolf-1", tick, dt, logger)
		patrol(world, "wolf-2", tick+90, dt, logger)

		world.ProcessTriggers()

		if tick%120 == 0 {
			report(world, logger, tick)
		}
	}

	fmt.Println("final scene:")
	world.DebugDraw(asciiDrawer{})
}

func setupScene(world *collision.World, logger *log.Logger) {
	moverFilter := actor.NewCategorySet(
		actor.CategoryStatic,
		actor.CategoryCharacter,
		actor.CategoryEnemy,
		actor.CategoryDynamic,
	)

	player := actor.New("player", actor.CategoryCharacter,
		actor.Capsule{Radius: 0.4, Height: 1.0, Center: mgl64.Vec3{0, 0.9, 0}},
		mgl64.Vec3{-8, 0, 0})
	player.CollidesWith = moverFilter

	objects := []*actor.Object{player}

	for i, pos := range []mgl64.Vec3{{-3, 0, 1}, {0, 0, -2}, {3, 0, 2}, {6, 0, 0}} {
		boulder := actor.New(fmt.Sprintf("boulder-%d", i), actor.CategoryStatic,
			actor.Sphere{Radius: 1.2}, pos)
		boulder.Static = true
		boulder.Mass = 50
		objects = append(objects, boulder)
	}

	for i, pos := range []mgl64.Vec3{{4, 0, 6}, {-4, 0, -6}} {
		wolf := actor.New(fmt.Sprintf("wolf-%d", i+1), actor.CategoryEnemy,
			actor.Capsule{Radius: 0.5, Height: 0.6, Center: mgl64.Vec3{0, 0.7, 0}}, pos)
		wolf.CollidesWith = moverFilter
		objects = append(objects, wolf)
	}

	shrine := actor.New("shrine", actor.CategoryTrigger,
		actor.Sphere{Radius: 2.5}, mgl64.Vec3{8, 0, 3})
	shrine.Mass = 0

	chest := actor.New("chest", actor.CategoryInteractable,
		actor.Sphere{Radius: 0.6}, mgl64.Vec3{9, 0, 3})
	chest.Mass = 0

	objects = append(objects, shrine, chest)

	for _, obj := range objects {
		if err := world.Register(obj); err != nil {
			logger.Fatal("register", "id", obj.Id, "err", err)
		}
	}
	logger.Info("scene ready", "objects", world.Count())
}

// patrol drives a wolf on a slow circle around its spawn point.
func patrol(world *collision.World, id string, tick int, dt float64, logger *log.Logger) {
	wolf := world.Get(id)
	if wolf == nil {
		return
	}

	angle := float64(tick) * dt * 0.8
	velocity := mgl64.Vec3{math.Cos(angle), 0, math.Sin(angle)}.Mul(1.5)
	desired := wolf.Position.Add(velocity.Mul(dt))

	moved := world.Resolve(id, wolf.Position, desired, velocity)
	if err := world.Update(id, moved.Position, moved.Velocity); err != nil {
		logger.Error("wolf update", "id", id, "err", err)
	}
}

func report(world *collision.World, logger *log.Logger, tick int) {
	player := world.Get("player")

	nearby := world.ObjectsInRadius(player.WorldCenter(), 5, actor.CategoryEnemy)
	for _, wolf := range nearby {
		sight := world.LineOfSight(player.WorldCenter(), wolf.WorldCenter(), 0,
			actor.NewCategorySet(actor.CategoryCharacter, actor.CategoryEnemy))
		logger.Info("wolf nearby",
			"tick", tick,
			"id", wolf.Id,
			"distance", fmt.Sprintf("%.2f", wolf.WorldCenter().Sub(player.WorldCenter()).Len()),
			"visible", sight.Clear,
		)
	}
	if len(nearby) == 0 {
		logger.Info("no wolves nearby", "tick", tick, "position", player.Position)
	}
}
