package editor

import (
	"testing"

	"github.com/akmonengine/modal/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func newGridLevel() []*actor.Actor {
	return []*actor.Actor{
		newBox("near", mgl64.Vec3{5, 0, 0}),
		newBox("far", mgl64.Vec3{10, 0, 0}),
		newBox("side", mgl64.Vec3{0, 20, 0}),
		actor.NewActor("ground", actor.NewTransform(), &actor.Plane{Normal: mgl64.Vec3{0, 0, 1}}),
		newBox("corner", mgl64.Vec3{12, 12, 12}),
		actor.NewActor("marker", actor.NewTransform(), nil),
	}
}

func buildGrid(actors []*actor.Actor) *Grid {
	grid := NewGrid(DefaultCellSize, DefaultNumCells)
	for i, a := range actors {
		grid.Insert(i, a)
	}

	return grid
}

func TestGrid_Candidates(t *testing.T) {
	grid := buildGrid(newGridLevel())

	tests := []struct {
		name      string
		origin    mgl64.Vec3
		direction mgl64.Vec3
		length    float64
		want      []int
	}{
		{"along X", mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 100, []int{0, 1, 3}},
		{"too short", mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 3, []int{3}},
		{"along Y", mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, 100, []int{2, 3}},
		{"backwards", mgl64.Vec3{0, 30, 0}, mgl64.Vec3{0, -1, 0}, 100, []int{2, 3}},
		{"away", mgl64.Vec3{}, mgl64.Vec3{-1, 0, 0}, 100, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, grid.Candidates(tt.origin, tt.direction, tt.length))
		})
	}
}

func TestGrid_Diagonal(t *testing.T) {
	grid := buildGrid(newGridLevel())

	candidates := grid.Candidates(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}.Normalize(), 100)
	assert.Contains(t, candidates, 4)
	assert.Contains(t, candidates, 3)
	assert.NotContains(t, candidates, 2)
	assert.NotContains(t, candidates, 5, "actors without a shape are never candidates")
}

func TestGrid_OversizedActorsAreUnbounded(t *testing.T) {
	huge := actor.NewActor("huge", actor.NewTransform(), &actor.Box{HalfExtents: mgl64.Vec3{500, 500, 500}})
	grid := buildGrid([]*actor.Actor{newBox("small", mgl64.Vec3{}), huge})

	assert.Equal(t, []int{1}, grid.Candidates(mgl64.Vec3{100, 100, 100}, mgl64.Vec3{0, 0, 1}, 10))
}

func TestGrid_Clear(t *testing.T) {
	grid := buildGrid(newGridLevel())
	grid.Clear()

	assert.Empty(t, grid.Candidates(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 100))
}

func TestNextPowerOfTwo(t *testing.T) {
	for in, want := range map[int]int{-3: 1, 0: 1, 1: 1, 3: 4, 4: 4, 1000: 1024} {
		assert.Equal(t, want, nextPowerOfTwo(in), "nextPowerOfTwo(%d)", in)
	}
}

func TestLevel_LineTraceMatchesEveryActor(t *testing.T) {
	level := &Level{}
	for _, a := range newGridLevel() {
		level.AddActor(a)
	}

	hit, ok := level.LineTrace(mgl64.Vec3{0, 0, 20}, mgl64.Vec3{20, 20, -20}, nil)
	assert.True(t, ok)
	// the diagonal passes over the corner box and lands on the ground
	assert.Equal(t, "ground", hit.Object.(*actor.Actor).Name)
}
