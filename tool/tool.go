// Package tool implements the modal Move, Rotate and Scale operations.
//
// A tool lives for one operation: Begin captures the selection, Update runs once per frame,
// Close accepts or rolls back. Every host handle comes in through a Context.
package tool

import (
	"errors"
	"log/slog"

	"github.com/akmonengine/modal/axislock"
	"github.com/akmonengine/modal/config"
	"github.com/akmonengine/modal/host"
)

// ErrNoSelection is returned by Begin when nothing is selected
var ErrNoSelection = errors.New("no selected object")

// ErrAlreadyStarted is returned by Begin on a tool that already ran
var ErrAlreadyStarted = errors.New("tool already started")

type Kind uint8

const (
	KindMove Kind = iota
	KindRotate
	KindScale
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "Move"
	case KindRotate:
		return "Rotate"
	case KindScale:
		return "Scale"
	}

	return "Unknown"
}

// TransactionName is the undo journal entry of an operation of this kind
func (k Kind) TransactionName() string {
	return "Modal " + k.String()
}

// Context carries the host handles of the current frame
type Context struct {
	Viewport  host.Viewport
	Selection host.Selection
	Journal   host.Journal
	Scene     host.Scene
	Canvas    host.Canvas
	Outline   host.Outline
	Settings  *config.Settings
	Logger    *slog.Logger
}

func (ctx *Context) settings() *config.Settings {
	if ctx.Settings == nil {
		ctx.Settings = config.Default()
	}

	return ctx.Settings
}

func (ctx *Context) logger() *slog.Logger {
	if ctx.Logger == nil {
		return slog.Default()
	}

	return ctx.Logger
}

// Tool is one of Move, Rotate or Scale
type Tool interface {
	Kind() Kind
	// Begin snapshots the selection and opens the operation transaction
	Begin(ctx *Context) error
	// Update applies the cursor motion of the current frame
	Update(ctx *Context)
	// Close commits the operation, or restores every snapshot when success is false.
	// Closing twice is a no-op.
	Close(ctx *Context, success bool)
	// DrawOverlay draws the axis guides and the cursor line on the HUD canvas
	DrawOverlay(ctx *Context)
	SetAxisLock(ctx *Context, axis axislock.Axis, dual bool)
	AddSnapOffset(delta float64)
	Lock() *axislock.Lock
	Closed() bool
}

// New creates an idle tool of the given kind
func New(kind Kind) Tool {
	switch kind {
	case KindRotate:
		return NewRotate()
	case KindScale:
		return NewScale()
	default:
		return NewMove()
	}
}
