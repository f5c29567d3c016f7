package editor

import (
	"github.com/akmonengine/modal/actor"
	"github.com/akmonengine/modal/host"
)

// Selection is the ordered set of selected objects.
// Listeners are called synchronously after every change.
type Selection struct {
	objects   []actor.Object
	listeners map[int]func()
	nextID    int
}

func NewSelection() *Selection {
	return &Selection{
		listeners: make(map[int]func()),
	}
}

// Selected returns a copy of the selected objects, in selection order
func (s *Selection) Selected() []actor.Object {
	selected := make([]actor.Object, len(s.objects))
	copy(selected, s.objects)

	return selected
}

func (s *Selection) Count() int {
	return len(s.objects)
}

// IsSelected reports whether object is part of the selection
func (s *Selection) IsSelected(object actor.Object) bool {
	return s.indexOf(object) != -1
}

// Select replaces the selection
func (s *Selection) Select(objects ...actor.Object) {
	s.objects = s.objects[:0]
	for _, object := range objects {
		if s.indexOf(object) == -1 {
			s.objects = append(s.objects, object)
		}
	}
	s.notify()
}

// Add appends objects that are not selected yet
func (s *Selection) Add(objects ...actor.Object) {
	changed := false
	for _, object := range objects {
		if s.indexOf(object) == -1 {
			s.objects = append(s.objects, object)
			changed = true
		}
	}

	if changed {
		s.notify()
	}
}

// Deselect removes an object from the selection
func (s *Selection) Deselect(object actor.Object) {
	k := s.indexOf(object)
	if k == -1 {
		return
	}

	s.objects = append(s.objects[:k], s.objects[k+1:]...)
	s.notify()
}

// Clear empties the selection
func (s *Selection) Clear() {
	if len(s.objects) == 0 {
		return
	}

	s.objects = s.objects[:0]
	s.notify()
}

// Subscribe registers fn to be called after every selection change
func (s *Selection) Subscribe(fn func()) host.Subscription {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return &subscription{selection: s, id: id}
}

// Listeners returns the number of active subscriptions
func (s *Selection) Listeners() int {
	return len(s.listeners)
}

func (s *Selection) indexOf(object actor.Object) int {
	for i, o := range s.objects {
		if o == object {
			return i
		}
	}

	return -1
}

func (s *Selection) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

type subscription struct {
	selection *Selection
	id        int
	revoked   bool
}

// Unsubscribe removes the listener, later calls are no-ops
func (sub *subscription) Unsubscribe() {
	if sub.revoked {
		return
	}

	sub.revoked = true
	delete(sub.selection.listeners, sub.id)
}
