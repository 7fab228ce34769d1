// Package arcade is a small arcade-style physics world: axis-aligned bodies,
// constant gravity, immovable static bodies and a touching-down flag.
// Bodies live as entities in an ark ECS world; their collision shapes live in
// a resolv space.
package arcade

import (
	"fmt"
	"math"
	"sort"

	"github.com/mlange-42/ark/ecs"
	"github.com/solarlune/resolv"

	"chosenoffset.com/skyhop/internal/anim"
)

// Collision tags.
const (
	tagSolid = "solid"
	tagBody  = "body"
)

// contactSlop absorbs rounding left over from resolving a contact, so a
// body resting on an edge is not treated as penetrating it.
const contactSlop = 1e-6

// Default space dimensions used when Config leaves them at zero.
const (
	DefaultSpaceWidth  = 2048
	DefaultSpaceHeight = 2048
	DefaultCellSize    = 16
)

// Transform places a sprite. X/Y are the center of the sprite.
type Transform struct {
	X, Y           float64
	ScaleX, ScaleY float64
}

// Body is the physics state of a sprite. Width/Height are unscaled.
type Body struct {
	Width, Height float64
	VX, VY        float64
	Static        bool
	AllowGravity  bool
	TouchingDown  bool

	object *resolv.Object
}

// Appearance tracks what to draw for a sprite.
type Appearance struct {
	Sheet    string
	Frame    int
	Animator *anim.Animator
}

// Meta carries free-form data attached by game code (e.g. platform type).
type Meta struct {
	Data map[string]any
}

// SheetSizer reports the frame size of a sprite sheet.
type SheetSizer interface {
	FrameSize(sheet string) (w, h float64, err error)
}

// Config holds world-wide physics settings.
type Config struct {
	GravityX     float64
	GravityY     float64
	MaxFallSpeed float64 // 0 disables the cap

	// Extent of the collision space in pixels, from (0, 0). Bodies outside
	// it do not collide.
	Width, Height int
	CellSize      int
}

// CollideFunc is called when a moving sprite is stopped by a static one.
type CollideFunc func(mover, static *Sprite)

// World owns all sprites and advances them.
type World struct {
	cfg       Config
	anims     *anim.Registry
	sizes     SheetSizer
	world     ecs.World
	sprites   *ecs.Map4[Transform, Body, Appearance, Meta]
	all       *ecs.Filter4[Transform, Body, Appearance, Meta]
	space     *resolv.Space
	owners    map[*resolv.Object]ecs.Entity
	onCollide []CollideFunc
}

// NewWorld creates an empty world.
func NewWorld(cfg Config, anims *anim.Registry, sizes SheetSizer) *World {
	if cfg.Width <= 0 {
		cfg.Width = DefaultSpaceWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultSpaceHeight
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = DefaultCellSize
	}
	w := &World{
		cfg:    cfg,
		anims:  anims,
		sizes:  sizes,
		space:  resolv.NewSpace(cfg.Width, cfg.Height, cfg.CellSize, cfg.CellSize),
		owners: make(map[*resolv.Object]ecs.Entity),
	}
	w.world = ecs.NewWorld()
	w.sprites = ecs.NewMap4[Transform, Body, Appearance, Meta](&w.world)
	w.all = ecs.NewFilter4[Transform, Body, Appearance, Meta](&w.world)
	return w
}

// AddSprite creates a dynamic, gravity-affected sprite centered on (x, y).
func (w *World) AddSprite(x, y float64, sheet string) (*Sprite, error) {
	return w.add(x, y, sheet, false)
}

// AddStaticSprite creates an immovable sprite centered on (x, y).
func (w *World) AddStaticSprite(x, y float64, sheet string) (*Sprite, error) {
	return w.add(x, y, sheet, true)
}

func (w *World) add(x, y float64, sheet string, static bool) (*Sprite, error) {
	fw, fh, err := w.sizes.FrameSize(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sprite: %w", err)
	}
	tag := tagBody
	if static {
		tag = tagSolid
	}
	obj := resolv.NewObject(x-fw/2, y-fh/2, fw, fh, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, fw, fh))
	w.space.Add(obj)

	t := Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
	b := Body{Width: fw, Height: fh, Static: static, AllowGravity: !static, object: obj}
	a := Appearance{Sheet: sheet, Animator: anim.NewAnimator(w.anims)}
	m := Meta{Data: make(map[string]any)}
	e := w.sprites.NewEntity(&t, &b, &a, &m)
	w.owners[obj] = e
	return &Sprite{world: w, entity: e, static: static}, nil
}

// AddZone registers a non-solid area that sprites can test with InZone.
func (w *World) AddZone(r Rect, tag string) {
	obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
	w.space.Add(obj)
}

// OnCollide registers a callback for static contacts resolved during Step.
func (w *World) OnCollide(fn CollideFunc) {
	w.onCollide = append(w.onCollide, fn)
}

// Sprites returns every live sprite, static ones first, each group in
// creation order.
func (w *World) Sprites() []*Sprite {
	var out []*Sprite
	query := w.all.Query()
	for query.Next() {
		_, b, _, _ := query.Get()
		out = append(out, &Sprite{world: w, entity: query.Entity(), static: b.Static})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].static != out[j].static {
			return out[i].static
		}
		return out[i].entity.ID() < out[j].entity.ID()
	})
	return out
}

// Len returns the number of live sprites.
func (w *World) Len() int {
	n := 0
	query := w.all.Query()
	for query.Next() {
		n++
	}
	return n
}

type contact struct {
	mover, static ecs.Entity
}

// Step advances every dynamic body by dt seconds, stopping it against static
// bodies, then advances animations.
func (w *World) Step(dt float64) {
	var movers []ecs.Entity
	query := w.all.Query()
	for query.Next() {
		_, b, _, _ := query.Get()
		if !b.Static {
			movers = append(movers, query.Entity())
		}
	}

	var contacts []contact
	for _, e := range movers {
		t, b, _, _ := w.sprites.Get(e)
		obj := b.object
		b.TouchingDown = false
		if b.AllowGravity {
			b.VX += w.cfg.GravityX * dt
			b.VY += w.cfg.GravityY * dt
		}
		if w.cfg.MaxFallSpeed > 0 && b.VY > w.cfg.MaxFallSpeed {
			b.VY = w.cfg.MaxFallSpeed
		}

		// Horizontal pass.
		if dx := b.VX * dt; dx != 0 {
			if blockers := w.move(obj, dx, true); len(blockers) > 0 {
				b.VX = 0
				for _, o := range blockers {
					contacts = append(contacts, contact{mover: e, static: w.owners[o]})
				}
			}
		}

		// Vertical pass.
		if dy := b.VY * dt; dy != 0 {
			if blockers := w.move(obj, dy, false); len(blockers) > 0 {
				if dy > 0 {
					b.TouchingDown = true
				}
				b.VY = 0
				for _, o := range blockers {
					contacts = append(contacts, contact{mover: e, static: w.owners[o]})
				}
			}
		}

		t.X = obj.X + obj.W/2
		t.Y = obj.Y + obj.H/2
	}

	w.advanceAnimations(dt)

	for _, c := range contacts {
		if !w.world.Alive(c.mover) || !w.world.Alive(c.static) {
			continue
		}
		mover := &Sprite{world: w, entity: c.mover}
		static := &Sprite{world: w, entity: c.static, static: true}
		for _, fn := range w.onCollide {
			fn(mover, static)
		}
	}
}

// move shifts obj by up to d along one axis, stopping at the nearest solid
// ahead of it, and returns the solids it came to rest against.
func (w *World) move(obj *resolv.Object, d float64, horizontal bool) []*resolv.Object {
	// resolv's cell lookup stops a pixel short of the moved box's far edge,
	// so probe one pixel further than the move.
	probe := d + math.Copysign(1, d)
	var check *resolv.Collision
	if horizontal {
		check = obj.Check(probe, 0, tagSolid)
	} else {
		check = obj.Check(0, probe, tagSolid)
	}

	pos, size := extent(obj, horizontal)
	travel := math.Abs(d)
	var blockers []*resolv.Object
	if check != nil {
		crossPos, crossSize := extent(obj, !horizontal)
		for _, o := range check.Objects {
			if oPos, oSize := extent(o, !horizontal); !spansOverlap(crossPos, crossSize, oPos, oSize) {
				continue
			}
			oPos, oSize := extent(o, horizontal)
			gap := oPos - (pos + size)
			if d < 0 {
				gap = pos - (oPos + oSize)
			}
			switch {
			case gap < -contactSlop || gap > travel:
			case gap < travel-contactSlop:
				blockers = []*resolv.Object{o}
				travel = gap
			default:
				blockers = append(blockers, o)
			}
		}
	}

	next := pos + d
	if len(blockers) > 0 {
		bPos, bSize := extent(blockers[0], horizontal)
		next = bPos - size
		if d < 0 {
			next = bPos + bSize
		}
	}
	if horizontal {
		obj.X = next
	} else {
		obj.Y = next
	}
	obj.Update()
	return blockers
}

// extent returns an object's position and size along one axis.
func extent(o *resolv.Object, horizontal bool) (pos, size float64) {
	if horizontal {
		return o.X, o.W
	}
	return o.Y, o.H
}

// spansOverlap reports whether [a, a+alen) and [b, b+blen) share more than
// a touching edge.
func spansOverlap(a, alen, b, blen float64) bool {
	return a < b+blen-contactSlop && b < a+alen-contactSlop
}

func (w *World) advanceAnimations(dt float64) {
	query := w.all.Query()
	for query.Next() {
		_, _, a, _ := query.Get()
		a.Animator.Update(dt)
		if frame := a.Animator.Frame(); frame >= 0 {
			a.Frame = frame
		}
	}
}

// place moves the body's collision object to match its transform.
func (w *World) place(t *Transform, b *Body) {
	obj := b.object
	width := b.Width * t.ScaleX
	height := b.Height * t.ScaleY
	if obj.W != width || obj.H != height {
		obj.W, obj.H = width, height
		obj.SetShape(resolv.NewRectangle(0, 0, width, height))
	}
	obj.X = t.X - width/2
	obj.Y = t.Y - height/2
	obj.Update()
}
