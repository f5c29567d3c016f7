package editor

import (
	"math"
	"sort"

	"github.com/akmonengine/modal/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultCellSize = 4.0
	DefaultNumCells = 1024

	// actors spanning more cells than this on one axis are tested by every trace
	maxCellSpan = 64
	// upper bound of cells walked by one trace
	maxTraversal = 1 << 16
	// slack added around the grid bounds before clipping a trace
	boundsSlack = 1e-6
)

// cellKey is the integer coordinate of a cell
type cellKey [3]int

// cell holds the indices of the actors overlapping it
type cell struct {
	actorIndices []int
}

// Grid is a uniform hashed grid of actor bounds, the broad phase of line traces.
// Actors without a shape are never inserted, planes and oversized actors are kept apart
// and returned by every query.
type Grid struct {
	cellSize float64
	cells    []cell
	cellMask int

	unbounded []int
	bounds    actor.AABB
	bounded   int
	count     int
}

// NewGrid creates a grid of numCells buckets, rounded up to a power of two
func NewGrid(cellSize float64, numCells int) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	numCells = nextPowerOfTwo(numCells)

	cells := make([]cell, numCells)
	for i := range cells {
		cells[i].actorIndices = make([]int, 0, 8)
	}

	return &Grid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo rounds n up to the next power of two
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

func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].actorIndices = g.cells[i].actorIndices[:0]
	}
	g.unbounded = g.unbounded[:0]
	g.bounds = actor.AABB{}
	g.bounded = 0
	g.count = 0
}

// Insert adds the actor under index in every cell its bounds overlap
func (g *Grid) Insert(index int, a *actor.Actor) {
	if a.Shape == nil {
		return
	}
	g.count = max(g.count, index+1)

	aabb := a.Shape.GetAABB()
	if a.Shape.Type() == actor.ShapeTypePlane || !isFinite(aabb) {
		g.unbounded = append(g.unbounded, index)
		return
	}
	minCell := g.worldToCell(aabb.Min)
	maxCell := g.worldToCell(aabb.Max)
	if spansTooMany(minCell, maxCell) {
		g.unbounded = append(g.unbounded, index)
		return
	}

	if g.bounded == 0 {
		g.bounds = aabb
	} else {
		g.bounds = g.bounds.Union(aabb)
	}
	g.bounded++

	for x := minCell[0]; x <= maxCell[0]; x++ {
		for y := minCell[1]; y <= maxCell[1]; y++ {
			for z := minCell[2]; z <= maxCell[2]; z++ {
				cellIdx := g.hashCell(cellKey{x, y, z})
				g.cells[cellIdx].actorIndices = append(g.cells[cellIdx].actorIndices, index)
			}
		}
	}
}

// Candidates returns the sorted indices of the actors the segment origin + direction * [0, maxDistance]
// may touch. direction must be normalized.
func (g *Grid) Candidates(origin, direction mgl64.Vec3, maxDistance float64) []int {
	seen := make([]bool, g.count)
	result := make([]int, 0, len(g.unbounded)+8)
	for _, index := range g.unbounded {
		if !seen[index] {
			seen[index] = true
			result = append(result, index)
		}
	}

	if g.bounded > 0 {
		g.walk(origin, direction, maxDistance, func(key cellKey) {
			for _, index := range g.cells[g.hashCell(key)].actorIndices {
				if !seen[index] {
					seen[index] = true
					result = append(result, index)
				}
			}
		})
	}

	sort.Ints(result)
	return result
}

// walk visits the cells crossed by the segment inside the grid bounds, in order
func (g *Grid) walk(origin, direction mgl64.Vec3, maxDistance float64, visit func(cellKey)) {
	slack := mgl64.Vec3{boundsSlack, boundsSlack, boundsSlack}
	bounds := actor.AABB{Min: g.bounds.Min.Sub(slack), Max: g.bounds.Max.Add(slack)}

	tEnter, tExit, ok := bounds.ClipRay(origin, direction, maxDistance)
	if !ok {
		return
	}

	entry := origin.Add(direction.Mul(tEnter))
	current := g.worldToCell(entry)
	last := g.worldToCell(origin.Add(direction.Mul(tExit)))

	var step cellKey
	var tMax, tDelta [3]float64
	for i := range 3 {
		switch {
		case direction[i] > 0:
			step[i] = 1
			tMax[i] = tEnter + (float64(current[i]+1)*g.cellSize-entry[i])/direction[i]
			tDelta[i] = g.cellSize / direction[i]
		case direction[i] < 0:
			step[i] = -1
			tMax[i] = tEnter + (float64(current[i])*g.cellSize-entry[i])/direction[i]
			tDelta[i] = -g.cellSize / direction[i]
		default:
			tMax[i] = math.Inf(1)
			tDelta[i] = math.Inf(1)
		}
	}

	for range maxTraversal {
		visit(current)
		if current == last {
			return
		}

		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		if tMax[axis] > tExit {
			return
		}

		current[axis] += step[axis]
		tMax[axis] += tDelta[axis]
	}
}

// worldToCell converts a world position to cell coordinates
func (g *Grid) worldToCell(pos mgl64.Vec3) cellKey {
	return cellKey{
		int(math.Floor(pos.X() / g.cellSize)),
		int(math.Floor(pos.Y() / g.cellSize)),
		int(math.Floor(pos.Z() / g.cellSize)),
	}
}

// hashCell maps a cell to a bucket index
func (g *Grid) hashCell(key cellKey) int {
	h := (key[0] * 73856093) ^ (key[1] * 19349663) ^ (key[2] * 83492791)
	return h & g.cellMask
}

func spansTooMany(minCell, maxCell cellKey) bool {
	for i := range 3 {
		if maxCell[i]-minCell[i] > maxCellSpan {
			return true
		}
	}

	return false
}

func isFinite(aabb actor.AABB) bool {
	for i := range 3 {
		for _, v := range []float64{aabb.Min[i], aabb.Max[i]} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}

	return true
}
