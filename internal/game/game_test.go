package game

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"chosenoffset.com/skyhop/internal/assets"
	"chosenoffset.com/skyhop/internal/config"
	"chosenoffset.com/skyhop/internal/movement"
	"chosenoffset.com/skyhop/internal/platform"
	"chosenoffset.com/skyhop/internal/render"
	"chosenoffset.com/skyhop/internal/render/rendertest"
)

// farGoal keeps the goal out of the way of tests that do not need it.
var farGoal = config.GoalConfig{X: 0, Y: 0, W: 1, H: 1}

func newTestManager(t *testing.T, cfg *config.Config) (*Manager, *rendertest.Keys) {
	t.Helper()
	keys := rendertest.NewKeys()
	m, err := NewManager(cfg, &rendertest.Renderer{}, keys, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m, keys
}

func runUntil(t *testing.T, m *Manager, frames int, done func() bool) {
	t.Helper()
	for i := 0; i < frames; i++ {
		if err := m.Update(); err != nil {
			t.Fatalf("Update failed at frame %d: %v", i, err)
		}
		if done() {
			return
		}
	}
	t.Fatalf("Condition not reached after %d frames", frames)
}

func TestNewManagerStartsInGameScene(t *testing.T) {
	cfg := config.DefaultConfig()
	m, _ := newTestManager(t, cfg)

	if m.Current() != SceneGame {
		t.Fatalf("Expected scene %q, got %q", SceneGame, m.Current())
	}
	state := m.play.Machine().Current()
	if state.Kind != movement.Idle || state.Facing != movement.FacingRight {
		t.Errorf("Expected idle facing right, got %+v", state)
	}
	if got := len(m.play.Platforms()); got != len(cfg.Level.Platforms) {
		t.Errorf("Expected %d platforms, got %d", len(cfg.Level.Platforms), got)
	}
	x, y := m.play.Player().Position()
	if x != cfg.Player.SpawnX || y != cfg.Player.SpawnY {
		t.Errorf("Expected spawn at (%v, %v), got (%v, %v)", cfg.Player.SpawnX, cfg.Player.SpawnY, x, y)
	}
	if w, h := m.Layout(1600, 1200); w != 800 || h != 600 {
		t.Errorf("Expected fixed 800x600 layout, got %dx%d", w, h)
	}
}

func TestNewManagerRejectsBadFacing(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Player.Facing = "up"
	if _, err := NewManager(cfg, &rendertest.Renderer{}, rendertest.NewKeys(), zap.NewNop()); err == nil {
		t.Error("Expected error for invalid facing")
	}
}

func TestHoldingLeftRunsLeft(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Level.Goal = farGoal
	m, keys := newTestManager(t, cfg)

	keys.Press(render.KeyLeft)
	if err := m.Update(); err != nil {
		t.Fatal(err)
	}

	state := m.play.Machine().Current()
	if state.Kind != movement.MovingLeft {
		t.Fatalf("Expected MovingLeft, got %s", state.Kind)
	}
	if vx, _ := m.play.Player().Velocity(); vx != -cfg.Player.Speed {
		t.Errorf("Expected vx %v, got %v", -cfg.Player.Speed, vx)
	}
	// Spawned in the air, so the run clip holds instead of looping.
	animator := m.play.Player().Animator()
	if animator.Key() != "red-run-left" || animator.Looping() {
		t.Errorf("Expected non-looping red-run-left, got %s loop=%v", animator.Key(), animator.Looping())
	}

	keys.Release(render.KeyLeft)
	if err := m.Update(); err != nil {
		t.Fatal(err)
	}
	state = m.play.Machine().Current()
	if state.Kind != movement.Idle || state.Facing != movement.FacingLeft {
		t.Errorf("Expected idle facing left, got %+v", state)
	}
	if vx, _ := m.play.Player().Velocity(); vx != 0 {
		t.Errorf("Expected player stopped, got vx %v", vx)
	}
}

func TestEscapeQuits(t *testing.T) {
	m, keys := newTestManager(t, config.DefaultConfig())
	keys.Press(render.KeyEscape)
	if err := m.Update(); !errors.Is(err, render.ErrQuit) {
		t.Errorf("Expected ErrQuit, got %v", err)
	}
}

func TestLandingOnBoostLaunchesPlayer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Level.Goal = farGoal
	cfg.Level.Platforms = []platform.Placement{{Type: platform.TypeBoost, X: 100, Y: 300}}
	cfg.Player.SpawnX = 100
	cfg.Player.SpawnY = 250
	m, _ := newTestManager(t, cfg)

	runUntil(t, m, 120, func() bool { return m.play.Boosts() > 0 })

	if _, vy := m.play.Player().Velocity(); vy != -cfg.Boost.LaunchSpeed {
		t.Errorf("Expected vy %v after boost, got %v", -cfg.Boost.LaunchSpeed, vy)
	}
	boost := m.play.Platforms()[0].Animator()
	if boost.Key() != platform.BoostAnimationKey || boost.Looping() {
		t.Errorf("Expected boost platform to play %s once, got %s loop=%v", platform.BoostAnimationKey, boost.Key(), boost.Looping())
	}
	if len(m.play.messages) == 0 {
		t.Error("Expected a boost message")
	}
}

func TestHoldingJumpKeepsBoostLaunch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Level.Goal = farGoal
	cfg.Level.Platforms = []platform.Placement{{Type: platform.TypeBoost, X: 100, Y: 300}}
	cfg.Player.SpawnX = 100
	cfg.Player.SpawnY = 250
	m, keys := newTestManager(t, cfg)

	keys.Press(render.KeyUp)
	runUntil(t, m, 120, func() bool { return m.play.Boosts() > 0 })
	if !m.play.Player().Grounded() {
		t.Fatal("Expected the landing frame to report grounded")
	}

	if err := m.Update(); err != nil {
		t.Fatal(err)
	}
	want := -cfg.Boost.LaunchSpeed + cfg.Physics.GravityY*frameDelta
	if _, vy := m.play.Player().Velocity(); math.Abs(vy-want) > 1e-9 {
		t.Errorf("Expected boost launch to survive a held jump, want vy %v, got %v", want, vy)
	}
	if m.play.Boosts() != 1 {
		t.Errorf("Expected a single boost, got %d", m.play.Boosts())
	}
}

func TestHoldingJumpOnGroundJumps(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Level.Goal = farGoal
	cfg.Level.Platforms = []platform.Placement{{Type: platform.TypeGround, X: 100, Y: 400, Scale: 4}}
	cfg.Player.SpawnX = 100
	cfg.Player.SpawnY = 350
	m, keys := newTestManager(t, cfg)

	runUntil(t, m, 120, func() bool { return m.play.Player().Grounded() })
	keys.Press(render.KeyUp)
	if err := m.Update(); err != nil {
		t.Fatal(err)
	}
	want := -cfg.Player.JumpSpeed + cfg.Physics.GravityY*frameDelta
	if _, vy := m.play.Player().Velocity(); math.Abs(vy-want) > 1e-9 {
		t.Errorf("Expected jump vy %v, got %v", want, vy)
	}
	if m.play.Player().Grounded() {
		t.Error("Expected the player to leave the ground")
	}
}

func TestWalkingIntoBoostSideDoesNotLaunch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Level.Goal = farGoal
	cfg.Level.Platforms = []platform.Placement{
		{Type: platform.TypeGround, X: 100, Y: 400, Scale: 4},
		{Type: platform.TypeBoost, X: 200, Y: 356},
	}
	cfg.Player.SpawnX = 60
	cfg.Player.SpawnY = 350
	m, keys := newTestManager(t, cfg)

	runUntil(t, m, 120, func() bool { return m.play.Player().Grounded() })
	keys.Press(render.KeyRight)
	for i := 0; i < 60; i++ {
		if err := m.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if m.play.Boosts() != 0 {
		t.Errorf("Expected no boost from a side contact, got %d", m.play.Boosts())
	}
}

func TestReachingGoalEndsWithWin(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Level.Goal = config.GoalConfig{X: 90, Y: 490, W: 20, H: 20}
	m, _ := newTestManager(t, cfg)

	if err := m.Update(); err != nil {
		t.Fatal(err)
	}
	if m.Current() != SceneEnd {
		t.Fatalf("Expected end scene, got %q", m.Current())
	}
	if r := m.end.Result(); r.Outcome != OutcomeWon || r.Level != cfg.Level.Name {
		t.Errorf("Unexpected result %+v", r)
	}
}

func TestFallingOffEndsWithLoss(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Level.Goal = farGoal
	cfg.Level.Platforms = nil
	m, _ := newTestManager(t, cfg)

	runUntil(t, m, 600, func() bool { return m.Current() == SceneEnd })

	if r := m.end.Result(); r.Outcome != OutcomeLost {
		t.Errorf("Expected a loss, got %+v", r)
	}
	if msg := m.end.Result().Message(); msg != "You fell off the world." {
		t.Errorf("Unexpected message %q", msg)
	}
}

func TestSpaceRestartsLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Level.Goal = config.GoalConfig{X: 90, Y: 490, W: 20, H: 20}
	m, keys := newTestManager(t, cfg)
	if err := m.Update(); err != nil {
		t.Fatal(err)
	}
	if m.Current() != SceneEnd {
		t.Fatalf("Expected end scene, got %q", m.Current())
	}

	// Idle frames on the end scene change nothing.
	if err := m.Update(); err != nil || m.Current() != SceneEnd {
		t.Fatalf("Expected to stay on end scene, got %q (%v)", m.Current(), err)
	}

	keys.Tap(render.KeySpace)
	if err := m.Update(); err != nil {
		t.Fatal(err)
	}
	if m.Current() != SceneGame {
		t.Fatalf("Expected game scene after restart, got %q", m.Current())
	}
	if m.play.elapsed != 0 || m.play.Boosts() != 0 {
		t.Errorf("Expected fresh run, elapsed=%v boosts=%d", m.play.elapsed, m.play.Boosts())
	}
	if x, y := m.play.Player().Position(); x != cfg.Player.SpawnX || y != cfg.Player.SpawnY {
		t.Errorf("Expected player back at spawn, got (%v, %v)", x, y)
	}
}

func TestDrawPlayScene(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Physics.Debug = true
	m, _ := newTestManager(t, cfg)
	r := m.play.renderer.(*rendertest.Renderer)

	screen := rendertest.NewImage(cfg.Window.Width, cfg.Window.Height)
	m.Draw(screen)

	if screen.Filled != assets.Palette.Sky {
		t.Errorf("Expected sky fill, got %v", screen.Filled)
	}
	if want := len(cfg.Level.Platforms) + 1; screen.Draws != want {
		t.Errorf("Expected %d sprite draws, got %d", want, screen.Draws)
	}
	// Goal plus four outline edges per body.
	if want := 1 + 4*(len(cfg.Level.Platforms)+1); r.Rects != want {
		t.Errorf("Expected %d rects, got %d", want, r.Rects)
	}
	if len(screen.TextLines) != 2 {
		t.Errorf("Expected HUD and debug lines, got %v", screen.TextLines)
	}
}

func TestDrawEndScene(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Level.Goal = config.GoalConfig{X: 90, Y: 490, W: 20, H: 20}
	m, _ := newTestManager(t, cfg)
	if err := m.Update(); err != nil {
		t.Fatal(err)
	}

	screen := rendertest.NewImage(cfg.Window.Width, cfg.Window.Height)
	m.Draw(screen)
	if len(screen.TextLines) != 3 {
		t.Fatalf("Expected 3 lines, got %v", screen.TextLines)
	}
	if screen.TextLines[0] != m.end.Result().Message() {
		t.Errorf("Expected result headline, got %q", screen.TextLines[0])
	}
}
