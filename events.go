package modal

import (
	"github.com/akmonengine/modal/actor"
	"github.com/akmonengine/modal/axislock"
	"github.com/akmonengine/modal/tool"
)

const (
	TOOL_BEGIN EventType = iota
	TOOL_ACCEPT
	TOOL_CANCEL
	AXIS_LOCK
	TRANSFORM_RESET
	DUPLICATE
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Tool events
type ToolBeginEvent struct {
	Tool    tool.Kind
	Objects []actor.Object
}

func (e ToolBeginEvent) Type() EventType { return TOOL_BEGIN }

type ToolAcceptEvent struct {
	Tool    tool.Kind
	Objects []actor.Object
}

func (e ToolAcceptEvent) Type() EventType { return TOOL_ACCEPT }

type ToolCancelEvent struct {
	Tool    tool.Kind
	Objects []actor.Object
	// Forced is set when the cancel came from a selection change
	Forced bool
}

func (e ToolCancelEvent) Type() EventType { return TOOL_CANCEL }

type AxisLockEvent struct {
	Tool       tool.Kind
	Axis       axislock.Axis
	Dual       bool
	WorldSpace bool
}

func (e AxisLockEvent) Type() EventType { return AXIS_LOCK }

// Editing events
type TransformResetEvent struct {
	Channel Channel
	Objects []actor.Object
}

func (e TransformResetEvent) Type() EventType { return TRANSFORM_RESET }

type DuplicateEvent struct {
	Sources []actor.Object
	Copies  []actor.Object
}

func (e DuplicateEvent) Type() EventType { return DUPLICATE }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 16),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// emit buffers an event until the next flush
func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events and clears the buffer.
// Events emitted by a listener during the flush are kept for the next flush.
func (e *Events) flush() {
	if len(e.buffer) == 0 {
		return
	}

	events := e.buffer
	e.buffer = make([]Event, 0, cap(events))
	for _, event := range events {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
}
