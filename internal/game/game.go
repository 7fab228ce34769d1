package game

import (
	"fmt"

	"go.uber.org/zap"

	"chosenoffset.com/skyhop/internal/anim"
	"chosenoffset.com/skyhop/internal/arcade"
	"chosenoffset.com/skyhop/internal/assets"
	"chosenoffset.com/skyhop/internal/config"
	"chosenoffset.com/skyhop/internal/input"
	"chosenoffset.com/skyhop/internal/movement"
	"chosenoffset.com/skyhop/internal/platform"
	"chosenoffset.com/skyhop/internal/render"
)

// landingTolerance is how far the player's feet may sit below a platform's
// top edge for a contact to count as landing on it.
const landingTolerance = 0.5

// goalZone tags the level's goal area in the physics world.
const goalZone = "goal"

// spaceMargin extends the collision space below the fall limit.
const spaceMargin = 64

// PlayScene is the level: platforms, the player and the movement machine.
type PlayScene struct {
	manager  *Manager
	cfg      *config.Config
	renderer render.Renderer
	keys     render.InputManager
	bindings input.Bindings
	logger   *zap.Logger

	// Loaded once and shared across restarts.
	library *assets.Library
	anims   *anim.Registry
	clips   *movement.AnimationTable
	facing  movement.Facing

	// Rebuilt on every Enter.
	world     *arcade.World
	platforms []*arcade.Sprite
	player    *arcade.Sprite
	machine   *movement.Machine
	goal      arcade.Rect
	elapsed   float64
	boosts    int
	launched  bool // a boost fired during the last step
	messages  []Message
	stepErr   error
}

// NewPlayScene generates the placeholder sheets and registers every player
// animation for the configured colors. The level itself is built on Enter.
func NewPlayScene(m *Manager, cfg *config.Config, r render.Renderer, keys render.InputManager, logger *zap.Logger) (*PlayScene, error) {
	facing, err := movement.ParseFacing(cfg.Player.Facing)
	if err != nil {
		return nil, err
	}

	s := &PlayScene{
		manager:  m,
		cfg:      cfg,
		renderer: r,
		keys:     keys,
		bindings: input.DefaultBindings(),
		logger:   logger,
		library:  assets.NewLibrary(r),
		anims:    anim.NewRegistry(),
		facing:   facing,
	}

	if err := assets.LoadPlaceholders(s.library, s.anims, cfg.Player.Colors); err != nil {
		return nil, fmt.Errorf("failed to load sprite sheets: %w", err)
	}
	s.clips, err = movement.NewAnimationTable(cfg.Player.Colors, s.anims)
	if err != nil {
		return nil, fmt.Errorf("failed to build player animation table: %w", err)
	}

	logger.Info("assets loaded",
		zap.Strings("sheets", s.library.Names()),
		zap.Int("animations", len(s.anims.Keys())),
	)
	return s, nil
}

// Enter builds a fresh level from the config.
func (s *PlayScene) Enter() error {
	s.world = arcade.NewWorld(arcade.Config{
		GravityX:     s.cfg.Physics.GravityX,
		GravityY:     s.cfg.Physics.GravityY,
		MaxFallSpeed: s.cfg.Physics.MaxFallSpeed,
		Width:        s.cfg.Window.Width,
		Height:       max(s.cfg.Window.Height, int(s.cfg.Level.FallLimit)) + spaceMargin,
	}, s.anims, s.library)
	s.world.OnCollide(s.handleCollision)

	platforms, err := platform.NewRegistry(s.world, s.anims, s.logger).Build(s.cfg.Level.Platforms)
	if err != nil {
		return fmt.Errorf("failed to build level %s: %w", s.cfg.Level.Name, err)
	}
	s.platforms = platforms

	color := s.cfg.Player.Color
	s.player, err = s.world.AddSprite(s.cfg.Player.SpawnX, s.cfg.Player.SpawnY, assets.PlayerSheetName(color))
	if err != nil {
		return fmt.Errorf("failed to spawn player: %w", err)
	}
	s.machine, err = movement.NewMachine(s.player, s.clips, movement.MachineConfig{
		Color:  color,
		Speed:  s.cfg.Player.Speed,
		Facing: s.facing,
	}, s.logger)
	if err != nil {
		return fmt.Errorf("failed to create player movement: %w", err)
	}

	g := s.cfg.Level.Goal
	s.goal = arcade.Rect{X: g.X, Y: g.Y, W: g.W, H: g.H}
	s.world.AddZone(s.goal, goalZone)
	s.elapsed = 0
	s.boosts = 0
	s.launched = false
	s.messages = nil
	s.stepErr = nil

	s.logger.Info("level loaded",
		zap.String("level", s.cfg.Level.Name),
		zap.Int("platforms", len(platforms)),
		zap.String("color", color),
	)
	return nil
}

// Update polls input, runs the movement machine, applies jumps and steps
// the physics world.
func (s *PlayScene) Update(dt float64) error {
	snap := s.bindings.Poll(s.keys)

	if _, _, err := s.machine.Update(snap); err != nil {
		return fmt.Errorf("failed to update player movement: %w", err)
	}
	// A boost that fired on the previous step leaves the player grounded for
	// one more frame; it must not be replaced by a jump.
	if snap.Jump && s.player.Grounded() && !s.launched && s.cfg.Player.JumpSpeed > 0 {
		s.player.SetVelocityY(-s.cfg.Player.JumpSpeed)
	}
	s.launched = false

	s.world.Step(dt)
	if s.stepErr != nil {
		return s.stepErr
	}
	s.elapsed += dt
	s.updateMessages(dt)

	switch {
	case s.player.InZone(goalZone):
		return s.manager.Finish(s.result(OutcomeWon))
	case s.player.Bounds().Top() > s.cfg.Level.FallLimit:
		return s.manager.Finish(s.result(OutcomeLost))
	}
	return nil
}

func (s *PlayScene) result(o Outcome) Result {
	return Result{Outcome: o, Level: s.cfg.Level.Name, Time: s.elapsed, Boosts: s.boosts}
}

// handleCollision launches the player when it lands on a boost platform.
func (s *PlayScene) handleCollision(mover, static *arcade.Sprite) {
	if mover.Entity() != s.player.Entity() || static.DataString(platform.DataType) != platform.TypeBoost {
		return
	}
	if mover.Bounds().Bottom() > static.Bounds().Top()+landingTolerance {
		return
	}

	if err := static.PlayAnimation(platform.BoostAnimationKey, false); err != nil {
		s.stepErr = fmt.Errorf("failed to play boost animation: %w", err)
		return
	}
	mover.SetVelocityY(-s.cfg.Boost.LaunchSpeed)
	s.launched = true
	s.boosts++
	s.ShowMessage("Boost!")

	x, y := static.Position()
	s.logger.Debug("boost", zap.Float64("x", x), zap.Float64("y", y), zap.Int("count", s.boosts))
}

func (s *PlayScene) updateMessages(dt float64) {
	var active []Message
	for _, msg := range s.messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	s.messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (s *PlayScene) ShowMessage(text string) {
	s.messages = append(s.messages, Message{
		Text:     text,
		TimeLeft: 1.5,
		MaxTime:  1.5,
	})
}

// Player returns the player sprite.
func (s *PlayScene) Player() *arcade.Sprite {
	return s.player
}

// Machine returns the player's movement machine.
func (s *PlayScene) Machine() *movement.Machine {
	return s.machine
}

// Platforms returns the level's platform sprites in placement order.
func (s *PlayScene) Platforms() []*arcade.Sprite {
	return s.platforms
}

// Boosts returns how many boost launches happened this run.
func (s *PlayScene) Boosts() int {
	return s.boosts
}
