// Package input turns raw key state into the per-frame snapshot the
// movement logic consumes.
package input

import "chosenoffset.com/skyhop/internal/render"

// Snapshot is the input state sampled once per frame.
type Snapshot struct {
	Left  bool
	Right bool
	Jump  bool
}

// Neither reports whether no horizontal direction is held.
func (s Snapshot) Neither() bool {
	return !s.Left && !s.Right
}

// Bindings lists the keys that map onto each snapshot signal.
// Any bound key being held sets the signal.
type Bindings struct {
	Left  []render.Key
	Right []render.Key
	Jump  []render.Key
}

// DefaultBindings returns arrow keys plus WASD.
func DefaultBindings() Bindings {
	return Bindings{
		Left:  []render.Key{render.KeyLeft, render.KeyA},
		Right: []render.Key{render.KeyRight, render.KeyD},
		Jump:  []render.Key{render.KeyUp, render.KeyW, render.KeySpace},
	}
}

// Poll samples the current key state through the input manager.
func (b Bindings) Poll(mgr render.InputManager) Snapshot {
	return Snapshot{
		Left:  anyPressed(mgr, b.Left),
		Right: anyPressed(mgr, b.Right),
		Jump:  anyPressed(mgr, b.Jump),
	}
}

func anyPressed(mgr render.InputManager, keys []render.Key) bool {
	for _, k := range keys {
		if mgr.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
