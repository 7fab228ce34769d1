package movement

import (
	"fmt"

	"go.uber.org/zap"

	"chosenoffset.com/skyhop/internal/input"
)

// Body is what the movement states need from the player entity.
type Body interface {
	Position() (x, y float64)
	Grounded() bool
	SetVelocityX(v float64)
	PlayAnimation(key string, loop bool) error
}

// Apply enters the state described by t: it builds the state from the
// body's current position and ground contact, sets the body's horizontal
// velocity and plays the state's clip.
func Apply(t Transition, body Body, color string, anims *AnimationTable) (State, error) {
	x, y := body.Position()
	grounded := body.Grounded()

	var next State
	var err error
	switch t.To {
	case Idle:
		next = NewIdle(t.Facing, x, y, color, grounded)
	case MovingLeft:
		next, err = NewMovingLeft(t.VelocityX, x, y, color, grounded)
	case MovingRight:
		next, err = NewMovingRight(t.VelocityX, x, y, color, grounded)
	default:
		err = fmt.Errorf("%w: unknown state %s", ErrContractViolation, t.To)
	}
	if err != nil {
		return State{}, err
	}

	clip, err := anims.Lookup(color, next.Kind, next.Facing, grounded)
	if err != nil {
		return State{}, err
	}

	body.SetVelocityX(next.VelocityX)
	if err := body.PlayAnimation(clip.Key, clip.Loop); err != nil {
		return State{}, fmt.Errorf("failed to play %s: %w", clip.Key, err)
	}
	return next, nil
}

// MachineConfig configures a Machine.
type MachineConfig struct {
	Color  string
	Speed  float64 // Magnitude; must be positive
	Facing Facing  // Initial idle facing
}

// Machine owns the current movement state of one player.
type Machine struct {
	body    Body
	anims   *AnimationTable
	color   string
	speed   float64
	current State
	logger  *zap.Logger
}

// NewMachine spawns the player in the idle state, applying its effects.
func NewMachine(body Body, anims *AnimationTable, cfg MachineConfig, logger *zap.Logger) (*Machine, error) {
	if !(cfg.Speed > 0) {
		return nil, fmt.Errorf("%w: speed must be positive, got %v", ErrContractViolation, cfg.Speed)
	}
	m := &Machine{
		body:   body,
		anims:  anims,
		color:  cfg.Color,
		speed:  cfg.Speed,
		logger: logger,
	}
	initial, err := Apply(Transition{To: Idle, Facing: cfg.Facing}, body, cfg.Color, anims)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn idle state: %w", err)
	}
	m.current = initial
	return m, nil
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// Update decides on a transition for this frame's input and applies it.
// It reports true when the state was replaced; otherwise the returned state
// is the unchanged current one.
func (m *Machine) Update(in input.Snapshot) (State, bool, error) {
	t, ok := Decide(m.current, in, m.speed)
	if !ok {
		return m.current, false, nil
	}

	next, err := Apply(t, m.body, m.color, m.anims)
	if err != nil {
		return m.current, false, err
	}

	m.logger.Debug("movement transition",
		zap.Stringer("from", m.current.Kind),
		zap.Stringer("to", next.Kind),
		zap.Float64("velocity_x", next.VelocityX),
		zap.Bool("grounded", next.Grounded),
	)
	m.current = next
	return next, true, nil
}
