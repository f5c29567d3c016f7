package host

// Key identifies a keyboard key or mouse button
type Key string

const (
	KeyG      Key = "G"
	KeyR      Key = "R"
	KeyS      Key = "S"
	KeyX      Key = "X"
	KeyY      Key = "Y"
	KeyZ      Key = "Z"
	KeyD      Key = "D"
	KeyEscape Key = "Escape"

	LeftMouseButton  Key = "LeftMouseButton"
	RightMouseButton Key = "RightMouseButton"
	MouseScrollUp    Key = "MouseScrollUp"
	MouseScrollDown  Key = "MouseScrollDown"
)

// InputEvent is the kind of key transition
type InputEvent uint8

const (
	Pressed InputEvent = iota
	Released
	Repeat
)

func (e InputEvent) String() string {
	switch e {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	case Repeat:
		return "repeat"
	}

	return "unknown"
}
