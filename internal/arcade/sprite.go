package arcade

import (
	"github.com/mlange-42/ark/ecs"
	"github.com/spf13/cast"

	"chosenoffset.com/skyhop/internal/anim"
)

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Sprite is a handle to an entity in a World. Handles are cheap to copy and
// compare by Entity.
type Sprite struct {
	world  *World
	entity ecs.Entity
	static bool // sort hint only; Static() reads the body
}

// Entity returns the underlying ECS entity.
func (s *Sprite) Entity() ecs.Entity {
	return s.entity
}

// Alive reports whether the sprite has not been destroyed.
func (s *Sprite) Alive() bool {
	return s.world.world.Alive(s.entity)
}

// Destroy removes the sprite from its world.
func (s *Sprite) Destroy() {
	if !s.Alive() {
		return
	}
	_, b, _, _ := s.get()
	s.world.space.Remove(b.object)
	delete(s.world.owners, b.object)
	s.world.world.RemoveEntity(s.entity)
}

func (s *Sprite) get() (*Transform, *Body, *Appearance, *Meta) {
	return s.world.sprites.Get(s.entity)
}

// Position returns the sprite's center.
func (s *Sprite) Position() (x, y float64) {
	t, _, _, _ := s.get()
	return t.X, t.Y
}

// SetPosition moves the sprite's center to (x, y).
func (s *Sprite) SetPosition(x, y float64) *Sprite {
	t, b, _, _ := s.get()
	t.X, t.Y = x, y
	s.world.place(t, b)
	return s
}

// Scale returns the sprite's scale factors.
func (s *Sprite) Scale() (sx, sy float64) {
	t, _, _, _ := s.get()
	return t.ScaleX, t.ScaleY
}

// SetScale scales the sprite and its body uniformly.
func (s *Sprite) SetScale(f float64) *Sprite {
	t, b, _, _ := s.get()
	t.ScaleX, t.ScaleY = f, f
	s.world.place(t, b)
	return s
}

// Bounds returns the scaled body rectangle.
func (s *Sprite) Bounds() Rect {
	_, b, _, _ := s.get()
	obj := b.object
	return Rect{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H}
}

// InZone reports whether the sprite's body overlaps a zone added with tag.
func (s *Sprite) InZone(tag string) bool {
	_, b, _, _ := s.get()
	obj := b.object
	check := obj.Check(0, 0, tag)
	if check == nil {
		return false
	}
	for _, z := range check.Objects {
		if spansOverlap(obj.X, obj.W, z.X, z.W) && spansOverlap(obj.Y, obj.H, z.Y, z.H) {
			return true
		}
	}
	return false
}

// Static reports whether the sprite is immovable.
func (s *Sprite) Static() bool {
	_, b, _, _ := s.get()
	return b.Static
}

// Velocity returns the current velocity.
func (s *Sprite) Velocity() (vx, vy float64) {
	_, b, _, _ := s.get()
	return b.VX, b.VY
}

// SetVelocityX sets horizontal velocity. Static sprites ignore it.
func (s *Sprite) SetVelocityX(v float64) {
	_, b, _, _ := s.get()
	if !b.Static {
		b.VX = v
	}
}

// SetVelocityY sets vertical velocity. Static sprites ignore it.
func (s *Sprite) SetVelocityY(v float64) {
	_, b, _, _ := s.get()
	if !b.Static {
		b.VY = v
	}
}

// Grounded reports whether the body rested on a static body during the last step.
func (s *Sprite) Grounded() bool {
	_, b, _, _ := s.get()
	return b.TouchingDown
}

// SetData merges values into the sprite's data.
func (s *Sprite) SetData(values map[string]any) *Sprite {
	_, _, _, m := s.get()
	for k, v := range values {
		m.Data[k] = v
	}
	return s
}

// Data returns one data value.
func (s *Sprite) Data(key string) (any, bool) {
	_, _, _, m := s.get()
	v, ok := m.Data[key]
	return v, ok
}

// DataString returns a data value converted to a string, or "" when absent
// or not convertible.
func (s *Sprite) DataString(key string) string {
	v, ok := s.Data(key)
	if !ok {
		return ""
	}
	str, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return str
}

// PlayAnimation starts the named clip on this sprite; see anim.Animator.Play.
func (s *Sprite) PlayAnimation(key string, loop bool) error {
	_, _, a, _ := s.get()
	if err := a.Animator.Play(key, loop); err != nil {
		return err
	}
	a.Sheet = a.Animator.Sheet()
	a.Frame = a.Animator.Frame()
	return nil
}

// Animator returns the sprite's animator.
func (s *Sprite) Animator() *anim.Animator {
	_, _, a, _ := s.get()
	return a.Animator
}

// Appearance returns the sheet and frame to draw.
func (s *Sprite) Appearance() (sheet string, frame int) {
	_, _, a, _ := s.get()
	return a.Sheet, a.Frame
}
