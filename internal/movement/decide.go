package movement

import "chosenoffset.com/skyhop/internal/input"

// Transition describes the state to enter. It carries no side effects.
type Transition struct {
	To        Kind
	VelocityX float64
	Facing    Facing
}

// Decide returns the transition the input triggers from current, or false
// when the current state should be kept.
//
// When left and right are both held, Idle goes left, while MovingLeft and
// MovingRight switch to the opposite direction.
func Decide(current State, in input.Snapshot, speed float64) (Transition, bool) {
	switch current.Kind {
	case Idle:
		if in.Left {
			return Transition{To: MovingLeft, VelocityX: -speed, Facing: FacingLeft}, true
		}
		if in.Right {
			return Transition{To: MovingRight, VelocityX: speed, Facing: FacingRight}, true
		}
	case MovingLeft:
		if in.Neither() {
			return Transition{To: Idle, Facing: FacingLeft}, true
		}
		if in.Right {
			return Transition{To: MovingRight, VelocityX: speed, Facing: FacingRight}, true
		}
	case MovingRight:
		if in.Neither() {
			return Transition{To: Idle, Facing: FacingRight}, true
		}
		if in.Left {
			return Transition{To: MovingLeft, VelocityX: -speed, Facing: FacingLeft}, true
		}
	}
	return Transition{}, false
}
