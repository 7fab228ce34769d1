// Package movement implements the player's horizontal movement states.
//
// Deciding the next state is pure (Decide); applying it to the player body
// (velocity and animation) is a separate step (Apply) driven by Machine once
// per frame.
package movement

import (
	"errors"
	"fmt"
)

// DefaultSpeed is the horizontal speed magnitude in pixels per second.
const DefaultSpeed = 400.0

// ErrContractViolation marks a caller bug such as a directional state built
// with a velocity of the wrong sign.
var ErrContractViolation = errors.New("movement contract violation")

// Kind names a movement state.
type Kind int

const (
	Idle Kind = iota
	MovingLeft
	MovingRight
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case MovingLeft:
		return "moving_left"
	case MovingRight:
		return "moving_right"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Facing is the direction the player looks.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// ParseFacing converts "left" or "right".
func ParseFacing(s string) (Facing, error) {
	switch s {
	case "left":
		return FacingLeft, nil
	case "right":
		return FacingRight, nil
	default:
		return FacingRight, fmt.Errorf("unknown facing %q", s)
	}
}

// State is one movement state. States are values: a transition produces a
// new State and the old one is dropped.
type State struct {
	Kind      Kind
	VelocityX float64
	Facing    Facing
	X, Y      float64 // Position when the state was entered
	Color     string
	Grounded  bool // Touching down when the state was entered
}

// NewIdle creates an idle state facing the given direction.
func NewIdle(facing Facing, x, y float64, color string, grounded bool) State {
	return State{Kind: Idle, Facing: facing, X: x, Y: y, Color: color, Grounded: grounded}
}

// NewMovingLeft creates a moving-left state. velocityX must be negative.
func NewMovingLeft(velocityX, x, y float64, color string, grounded bool) (State, error) {
	if !(velocityX < 0) {
		return State{}, fmt.Errorf("%w: moving left needs a negative velocity, got %v", ErrContractViolation, velocityX)
	}
	return State{Kind: MovingLeft, VelocityX: velocityX, Facing: FacingLeft, X: x, Y: y, Color: color, Grounded: grounded}, nil
}

// NewMovingRight creates a moving-right state. velocityX must be positive.
func NewMovingRight(velocityX, x, y float64, color string, grounded bool) (State, error) {
	if !(velocityX > 0) {
		return State{}, fmt.Errorf("%w: moving right needs a positive velocity, got %v", ErrContractViolation, velocityX)
	}
	return State{Kind: MovingRight, VelocityX: velocityX, Facing: FacingRight, X: x, Y: y, Color: color, Grounded: grounded}, nil
}
