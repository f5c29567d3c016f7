package editor

import "github.com/akmonengine/modal/actor"

type change struct {
	object actor.Object
	before actor.Transform
	after  actor.Transform
}

// Record is one undoable action
type Record struct {
	Action  string
	changes []change
	created []*actor.Actor
}

// Objects returns the objects modified by the action
func (r *Record) Objects() []actor.Object {
	objects := make([]actor.Object, 0, len(r.changes))
	for _, c := range r.changes {
		objects = append(objects, c.object)
	}

	return objects
}

type transaction struct {
	name    string
	changes []change
	created []*actor.Actor
}

func (t *transaction) modified(object actor.Object) bool {
	for _, c := range t.changes {
		if c.object == object {
			return true
		}
	}

	return false
}

// Journal is the undo manager.
// Transactions nest, only the outermost End produces a Record.
type Journal struct {
	// Idx is the record undone next, -1 when there is nothing to undo
	Idx     int
	Records []*Record

	level     *Level
	selection *Selection
	stack     []*transaction
}

// NewJournal creates a journal, created actors are removed from level and selection when undone
func NewJournal(level *Level, selection *Selection) *Journal {
	return &Journal{
		Idx:       -1,
		level:     level,
		selection: selection,
	}
}

// Begin opens a transaction, nested in the current one if any
func (j *Journal) Begin(name string) {
	j.stack = append(j.stack, &transaction{name: name})
}

// End closes the innermost transaction
func (j *Journal) End() {
	if len(j.stack) == 0 {
		return
	}

	top := j.pop()
	if len(j.stack) > 0 {
		parent := j.stack[len(j.stack)-1]
		for _, c := range top.changes {
			if !parent.modified(c.object) {
				parent.changes = append(parent.changes, c)
			}
		}
		parent.created = append(parent.created, top.created...)
		return
	}

	if len(top.changes) == 0 && len(top.created) == 0 {
		return
	}

	record := &Record{Action: top.name, changes: top.changes, created: top.created}
	for i := range record.changes {
		record.changes[i].after = record.changes[i].object.GetTransform()
	}

	// drop the redo tail
	j.Records = append(j.Records[:j.Idx+1], record)
	j.Idx = len(j.Records) - 1
}

// Cancel closes the innermost transaction and rolls back what it recorded
func (j *Journal) Cancel() {
	if len(j.stack) == 0 {
		return
	}

	top := j.pop()
	j.restore(top.changes, top.created)
}

// Modify records the state of object before the first change of the innermost transaction.
// Outside of a transaction nothing is recorded.
func (j *Journal) Modify(object actor.Object) {
	if len(j.stack) == 0 {
		return
	}

	top := j.stack[len(j.stack)-1]
	if top.modified(object) {
		return
	}
	top.changes = append(top.changes, change{object: object, before: object.GetTransform()})
}

// Created records an actor added to the level by the current transaction
func (j *Journal) Created(a *actor.Actor) {
	if len(j.stack) == 0 {
		return
	}

	top := j.stack[len(j.stack)-1]
	top.created = append(top.created, a)
}

// Depth is the number of open transactions
func (j *Journal) Depth() int {
	return len(j.stack)
}

func (j *Journal) IsUndoAvail() bool {
	return j.Idx >= 0 && len(j.stack) == 0
}

func (j *Journal) IsRedoAvail() bool {
	return j.Idx < len(j.Records)-1 && len(j.stack) == 0
}

// Undo reverts the record at Idx and returns its action
func (j *Journal) Undo() (string, bool) {
	if !j.IsUndoAvail() {
		return "", false
	}

	record := j.Records[j.Idx]
	j.restore(record.changes, record.created)
	j.Idx--

	return record.Action, true
}

// Redo applies the record after Idx and returns its action
func (j *Journal) Redo() (string, bool) {
	if !j.IsRedoAvail() {
		return "", false
	}

	j.Idx++
	record := j.Records[j.Idx]
	for _, a := range record.created {
		if j.level != nil && !j.level.Contains(a) {
			j.level.AddActor(a)
		}
	}
	for _, c := range record.changes {
		c.object.SetTransform(c.after)
	}

	return record.Action, true
}

func (j *Journal) pop() *transaction {
	top := j.stack[len(j.stack)-1]
	j.stack = j.stack[:len(j.stack)-1]

	return top
}

func (j *Journal) restore(changes []change, created []*actor.Actor) {
	for i := len(changes) - 1; i >= 0; i-- {
		changes[i].object.SetTransform(changes[i].before)
	}

	for _, a := range created {
		if j.level != nil {
			j.level.RemoveActor(a)
		}
		if j.selection != nil {
			j.selection.Deselect(a)
		}
	}
}
