package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/blazinaj/gamescape-sub001/actor"
)

// CellKey addresses one cell of the broad-phase grid. Cells partition
// the horizontal plane only; the game world is not densely stacked
// vertically, so the vertical extent is folded into the exact tests
// every caller runs on the candidates.
type CellKey struct {
	X, Z int
}

type cell struct {
	ids []string
}

// SpatialGrid is a uniform hashed grid used as the broad phase. Buckets
// hold object ids and persist across frames; entries move between
// buckets only when an update crosses a cell boundary. Distinct cells
// may hash to the same bucket, which only ever enlarges the candidate
// superset, never shrinks it.
type SpatialGrid struct {
	cellSize float64
	cells    []cell
	cellMask int

	// maxRadius is the largest bounding radius ever inserted. It never
	// shrinks; queries use it to pad their search region so oversized
	// neighbors in adjacent cells are not missed.
	maxRadius float64
}

// NewSpatialGrid creates a grid with the given cell size and bucket
// count (rounded up to a power of two).
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]cell, numCells)
	for i := range cells {
		cells[i].ids = make([]string, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// MaxRadius is the largest bounding radius the grid has seen.
func (sg *SpatialGrid) MaxRadius() float64 {
	return sg.maxRadius
}

// Insert adds the id to every cell its bounds cover at position.
func (sg *SpatialGrid) Insert(id string, shape actor.Shape, position mgl64.Vec3) {
	if r := shape.BoundingRadius(); r > sg.maxRadius {
		sg.maxRadius = r
	}

	minCell, maxCell := sg.cellRange(shape.AABB(position))
	for x := minCell.X; x <= maxCell.X; x++ {
		for z := minCell.Z; z <= maxCell.Z; z++ {
			idx := sg.hashCell(CellKey{x, z})
			sg.cells[idx].ids = append(sg.cells[idx].ids, id)
		}
	}
}

// Remove deletes the id from every cell its bounds covered at position.
// One occurrence is removed per covered cell, since colliding hashes can
// legitimately leave the same id twice in one bucket.
func (sg *SpatialGrid) Remove(id string, shape actor.Shape, position mgl64.Vec3) {
	minCell, maxCell := sg.cellRange(shape.AABB(position))
	for x := minCell.X; x <= maxCell.X; x++ {
		for z := minCell.Z; z <= maxCell.Z; z++ {
			idx := sg.hashCell(CellKey{x, z})
			bucket := sg.cells[idx].ids
			for i, other := range bucket {
				if other == id {
					sg.cells[idx].ids = append(bucket[:i], bucket[i+1:]...)
					break
				}
			}
		}
	}
}

// Relocate moves the id between buckets after a position change. Most
// per-frame moves stay inside the same cells, which costs nothing.
func (sg *SpatialGrid) Relocate(id string, shape actor.Shape, oldPosition, newPosition mgl64.Vec3) {
	oldMin, oldMax := sg.cellRange(shape.AABB(oldPosition))
	newMin, newMax := sg.cellRange(shape.AABB(newPosition))
	if oldMin == newMin && oldMax == newMax {
		return
	}

	sg.Remove(id, shape, oldPosition)
	sg.Insert(id, shape, newPosition)
}

// CandidatesNear returns the ids in every cell overlapping a square of
// side 2*radius centered on position, padded by the largest known
// bounding radius. The result is a superset: callers always apply an
// exact shape or distance test afterward.
func (sg *SpatialGrid) CandidatesNear(position mgl64.Vec3, radius float64) []string {
	pad := radius + sg.maxRadius
	box := actor.AABB{Min: position, Max: position}.Expanded(pad)
	return sg.candidatesInBounds(box)
}

// CandidatesAlong returns the ids in every cell overlapping the bounds
// of the segment from..to, padded like CandidatesNear.
func (sg *SpatialGrid) CandidatesAlong(from, to mgl64.Vec3) []string {
	return sg.candidatesInBounds(actor.AABBFromSegment(from, to, sg.maxRadius))
}

func (sg *SpatialGrid) candidatesInBounds(box actor.AABB) []string {
	minCell, maxCell := sg.cellRange(box)

	var out []string
	seen := make(map[string]struct{})
	for x := minCell.X; x <= maxCell.X; x++ {
		for z := minCell.Z; z <= maxCell.Z; z++ {
			idx := sg.hashCell(CellKey{x, z})
			for _, id := range sg.cells[idx].ids {
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	}
	return out
}

func (sg *SpatialGrid) cellRange(box actor.AABB) (CellKey, CellKey) {
	return sg.worldToCell(box.Min), sg.worldToCell(box.Max)
}

// worldToCell converts a world position to horizontal cell coordinates.
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell maps a cell to a bucket index.
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
