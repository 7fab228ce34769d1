// Package platform builds the static platforms of a level from placement data.
package platform

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"chosenoffset.com/skyhop/internal/anim"
	"chosenoffset.com/skyhop/internal/arcade"
	"chosenoffset.com/skyhop/internal/assets"
)

// Platform types, stored in each sprite's "type" data value.
const (
	TypeBoost  = "boost"
	TypeGround = "ground"
)

// DataType is the data key holding the platform type.
const DataType = "type"

// Boost platform constants.
const (
	BoostAnimationKey = "boosty"
	BoostScale        = 3
	boostFrameRate    = 10
	boostRepeat       = 1
)

// ErrUnknownPlatform is returned for a placement type with no factory.
var ErrUnknownPlatform = errors.New("unknown platform type")

// Placement is one platform in a level.
type Placement struct {
	Type  string  `yaml:"type"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Scale float64 `yaml:"scale,omitempty"` // ground only; 0 means 1
}

// KnownType reports whether a factory exists for t.
func KnownType(t string) bool {
	return t == TypeBoost || t == TypeGround
}

// Physics is the part of the physics world the factories use.
type Physics interface {
	AddStaticSprite(x, y float64, sheet string) (*arcade.Sprite, error)
}

// Animations is the part of the animation registry the factories use.
type Animations interface {
	Create(def anim.Definition) (bool, error)
}

// Factory creates one platform sprite from a placement.
type Factory interface {
	Create(p Placement) (*arcade.Sprite, error)
}

// BoostFactory creates boost platforms. The shared boost animation is
// registered on the first Create.
type BoostFactory struct {
	physics    Physics
	anims      Animations
	logger     *zap.Logger
	registered bool
}

// NewBoostFactory creates a boost platform factory.
func NewBoostFactory(physics Physics, anims Animations, logger *zap.Logger) *BoostFactory {
	return &BoostFactory{physics: physics, anims: anims, logger: logger}
}

// Create places a static boost platform centered on (p.X, p.Y), scaled 3x
// and tagged type=boost. p.Scale is ignored.
func (f *BoostFactory) Create(p Placement) (*arcade.Sprite, error) {
	if err := f.registerAnimation(); err != nil {
		return nil, err
	}

	sprite, err := f.physics.AddStaticSprite(p.X, p.Y, assets.BoostSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create boost platform at (%v, %v): %w", p.X, p.Y, err)
	}
	sprite.SetScale(BoostScale).SetData(map[string]any{DataType: TypeBoost})

	f.logger.Debug("boost platform created", zap.Float64("x", p.X), zap.Float64("y", p.Y))
	return sprite, nil
}

func (f *BoostFactory) registerAnimation() error {
	if f.registered {
		return nil
	}
	_, err := f.anims.Create(anim.Definition{
		Key:       BoostAnimationKey,
		Sheet:     assets.BoostSheet,
		Frames:    anim.GenerateFrameNumbers(1, 4),
		FrameRate: boostFrameRate,
		Repeat:    boostRepeat,
	})
	if err != nil {
		return fmt.Errorf("failed to register %s animation: %w", BoostAnimationKey, err)
	}
	f.registered = true
	return nil
}

// GroundFactory creates plain ground platforms.
type GroundFactory struct {
	physics Physics
	logger  *zap.Logger
}

// NewGroundFactory creates a ground platform factory.
func NewGroundFactory(physics Physics, logger *zap.Logger) *GroundFactory {
	return &GroundFactory{physics: physics, logger: logger}
}

// Create places a static ground platform scaled by p.Scale.
func (f *GroundFactory) Create(p Placement) (*arcade.Sprite, error) {
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	sprite, err := f.physics.AddStaticSprite(p.X, p.Y, assets.GroundSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create ground platform at (%v, %v): %w", p.X, p.Y, err)
	}
	sprite.SetScale(scale).SetData(map[string]any{DataType: TypeGround})

	f.logger.Debug("ground platform created",
		zap.Float64("x", p.X), zap.Float64("y", p.Y), zap.Float64("scale", scale))
	return sprite, nil
}

// Registry dispatches placements to the factory for their type.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a registry with the boost and ground factories.
func NewRegistry(physics Physics, anims Animations, logger *zap.Logger) *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register(TypeBoost, NewBoostFactory(physics, anims, logger))
	r.Register(TypeGround, NewGroundFactory(physics, logger))
	return r
}

// Register sets the factory for a placement type.
func (r *Registry) Register(t string, f Factory) {
	r.factories[t] = f
}

// Create builds one placement.
func (r *Registry) Create(p Placement) (*arcade.Sprite, error) {
	f, ok := r.factories[p.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, p.Type)
	}
	return f.Create(p)
}

// Build creates every placement in order and stops at the first failure.
func (r *Registry) Build(placements []Placement) ([]*arcade.Sprite, error) {
	sprites := make([]*arcade.Sprite, 0, len(placements))
	for i, p := range placements {
		s, err := r.Create(p)
		if err != nil {
			return nil, fmt.Errorf("platform %d: %w", i, err)
		}
		sprites = append(sprites, s)
	}
	return sprites, nil
}
