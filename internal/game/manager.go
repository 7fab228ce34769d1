package game

import (
	"fmt"

	"go.uber.org/zap"

	"chosenoffset.com/skyhop/internal/config"
	"chosenoffset.com/skyhop/internal/render"
)

// Manager owns the scene list and implements render.Game.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int

	keys    render.InputManager
	logger  *zap.Logger
	scenes  map[string]Scene
	current string

	play *PlayScene
	end  *EndScene
}

// NewManager creates the game and end scenes and enters the game scene.
func NewManager(cfg *config.Config, r render.Renderer, keys render.InputManager, logger *zap.Logger) (*Manager, error) {
	m := &Manager{
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
		keys:         keys,
		logger:       logger,
		scenes:       make(map[string]Scene),
	}

	play, err := NewPlayScene(m, cfg, r, keys, logger)
	if err != nil {
		return nil, err
	}
	m.play = play
	m.end = NewEndScene(m, r, keys, logger)
	m.scenes[SceneGame] = m.play
	m.scenes[SceneEnd] = m.end

	if err := m.SwitchTo(SceneGame); err != nil {
		return nil, err
	}
	return m, nil
}

// Current returns the name of the active scene.
func (m *Manager) Current() string {
	return m.current
}

// SwitchTo enters the named scene and makes it current.
func (m *Manager) SwitchTo(name string) error {
	scene, ok := m.scenes[name]
	if !ok {
		return fmt.Errorf("unknown scene %q", name)
	}
	if err := scene.Enter(); err != nil {
		return fmt.Errorf("failed to enter scene %s: %w", name, err)
	}
	m.logger.Info("scene started", zap.String("scene", name), zap.String("previous", m.current))
	m.current = name
	return nil
}

// Finish hands a level result to the end scene and switches to it.
func (m *Manager) Finish(result Result) error {
	m.end.SetResult(result)
	m.logger.Info("level finished",
		zap.Stringer("outcome", result.Outcome),
		zap.String("level", result.Level),
		zap.Float64("time", result.Time),
		zap.Int("boosts", result.Boosts),
	)
	return m.SwitchTo(SceneEnd)
}

// Update runs one frame of the current scene. Escape ends the run loop.
func (m *Manager) Update() error {
	if m.keys.IsKeyPressed(render.KeyEscape) {
		return render.ErrQuit
	}
	scene, ok := m.scenes[m.current]
	if !ok {
		return fmt.Errorf("no active scene")
	}
	return scene.Update(frameDelta)
}

// Draw draws the current scene.
func (m *Manager) Draw(screen render.Image) {
	if scene, ok := m.scenes[m.current]; ok {
		scene.Draw(screen)
	}
}

// Layout keeps a fixed logical screen; the engine scales it to the window
// with nearest-neighbor filtering.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.ScreenWidth, m.ScreenHeight
}
