package editor

import (
	"github.com/akmonengine/modal/actor"
	"github.com/akmonengine/modal/host"
	"github.com/go-gl/mathgl/mgl64"
)

type Level struct {
	// List of all actors placed in the level
	Actors []*actor.Actor

	// trace broad phase, rebuilt by every trace since actors move freely
	grid *Grid
}

// AddActor adds an actor to the level
func (l *Level) AddActor(a *actor.Actor) {
	l.Actors = append(l.Actors, a)
}

// RemoveActor removes an actor from the level
func (l *Level) RemoveActor(a *actor.Actor) {
	k := -1
	for i, b := range l.Actors {
		if b == a {
			k = i
			break
		}
	}

	if k != -1 {
		l.Actors = append(l.Actors[:k], l.Actors[k+1:]...)
	}
}

// Contains reports whether the actor is placed in the level
func (l *Level) Contains(a *actor.Actor) bool {
	for _, b := range l.Actors {
		if b == a {
			return true
		}
	}

	return false
}

// Find returns the first actor with the given name
func (l *Level) Find(name string) (*actor.Actor, bool) {
	for _, a := range l.Actors {
		if a.Name == name {
			return a, true
		}
	}

	return nil, false
}

// LineTrace returns the closest actor surface on the segment [start, end], skipping ignored objects
func (l *Level) LineTrace(start, end mgl64.Vec3, ignore []actor.Object) (host.TraceHit, bool) {
	segment := end.Sub(start)
	length := segment.Len()
	if length == 0 {
		return host.TraceHit{}, false
	}
	direction := segment.Mul(1 / length)

	if l.grid == nil {
		l.grid = NewGrid(DefaultCellSize, DefaultNumCells)
	}
	l.grid.Clear()
	for i, a := range l.Actors {
		l.grid.Insert(i, a)
	}

	var closest actor.Hit
	found := false
	for _, i := range l.grid.Candidates(start, direction, length) {
		a := l.Actors[i]
		if isIgnored(a, ignore) {
			continue
		}

		hit, ok := a.Raycast(start, direction, length)
		if !ok {
			continue
		}
		if !found || hit.Distance < closest.Distance {
			closest = hit
			found = true
		}
	}

	if !found {
		return host.TraceHit{}, false
	}

	return host.TraceHit{
		Object: closest.Actor,
		Point:  closest.Point,
		Normal: closest.Normal,
	}, true
}

func isIgnored(a *actor.Actor, ignore []actor.Object) bool {
	for _, object := range ignore {
		if other, ok := object.(*actor.Actor); ok && other == a {
			return true
		}
	}

	return false
}
