package movement

import (
	"fmt"

	"chosenoffset.com/skyhop/internal/anim"
)

// Clip is the animation to play for a state.
type Clip struct {
	Key  string
	Loop bool
}

type clipKey struct {
	color    string
	kind     Kind
	facing   Facing
	grounded bool
}

// KeyChecker reports whether an animation key is defined.
type KeyChecker interface {
	Has(key string) bool
}

// AnimationTable maps (color, kind, facing, grounded) to a clip.
type AnimationTable struct {
	clips map[clipKey]Clip
}

// AnimationKey returns the conventional clip name,
// {color}-{idle|run}-{left|right}.
func AnimationKey(color string, kind Kind, facing Facing) string {
	action := "run"
	if kind == Idle {
		action = "idle"
	}
	return color + "-" + action + "-" + facing.String()
}

// NewAnimationTable builds the table for every color and checks each clip
// against known, so a missing animation fails here rather than mid-game.
// Idle clips loop; run clips loop when grounded and hold when airborne.
func NewAnimationTable(colors []string, known KeyChecker) (*AnimationTable, error) {
	t := &AnimationTable{clips: make(map[clipKey]Clip)}
	combos := []struct {
		kind   Kind
		facing Facing
	}{
		{Idle, FacingLeft},
		{Idle, FacingRight},
		{MovingLeft, FacingLeft},
		{MovingRight, FacingRight},
	}

	for _, color := range colors {
		if color == "" {
			return nil, fmt.Errorf("empty color tag")
		}
		for _, c := range combos {
			key := AnimationKey(color, c.kind, c.facing)
			if !known.Has(key) {
				return nil, fmt.Errorf("%w: %s (color %s, state %s)", anim.ErrUnknownAnimation, key, color, c.kind)
			}
			for _, grounded := range []bool{true, false} {
				t.clips[clipKey{color, c.kind, c.facing, grounded}] = Clip{
					Key:  key,
					Loop: c.kind == Idle || grounded,
				}
			}
		}
	}
	return t, nil
}

// Lookup returns the clip for a state.
func (t *AnimationTable) Lookup(color string, kind Kind, facing Facing, grounded bool) (Clip, error) {
	clip, ok := t.clips[clipKey{color, kind, facing, grounded}]
	if !ok {
		return Clip{}, fmt.Errorf("%w: no clip for color %q state %s facing %s", anim.ErrUnknownAnimation, color, kind, facing)
	}
	return clip, nil
}

// Len returns the number of entries.
func (t *AnimationTable) Len() int {
	return len(t.clips)
}
