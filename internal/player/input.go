package player

// Action is one of the four things a player can ask the car to do.
type Action int

const (
	ActionForward Action = iota
	ActionBackward
	ActionLeft
	ActionRight
	ActionCount
)

func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionBackward:
		return "backward"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	}
	return "unknown"
}

// Input is the state of a player's keys for one frame.
type Input struct {
	Forward, Backward, Left, Right bool
}

// Bindings maps each action to a key name understood by the display layer.
type Bindings map[Action]string

// DefaultBindings returns WASD for player 0 and the arrow keys for everyone
// else.
func DefaultBindings(index int) Bindings {
	if index == 0 {
		return Bindings{
			ActionForward:  "W",
			ActionBackward: "S",
			ActionLeft:     "A",
			ActionRight:    "D",
		}
	}
	return Bindings{
		ActionForward:  "ArrowUp",
		ActionBackward: "ArrowDown",
		ActionLeft:     "ArrowLeft",
		ActionRight:    "ArrowRight",
	}
}

// Sample builds an Input by asking pressed about each bound key.
func (b Bindings) Sample(pressed func(key string) bool) Input {
	held := func(a Action) bool {
		key, ok := b[a]
		return ok && key != "" && pressed(key)
	}
	return Input{
		Forward:  held(ActionForward),
		Backward: held(ActionBackward),
		Left:     held(ActionLeft),
		Right:    held(ActionRight),
	}
}
