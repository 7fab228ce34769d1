package game

import (
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"chosenoffset.com/skyhop/internal/render"
)

var endBackground = color.RGBA{20, 20, 40, 255}

// EndScene shows the result of a run and restarts the level on Space.
type EndScene struct {
	manager  *Manager
	renderer render.Renderer
	keys     render.InputManager
	logger   *zap.Logger
	result   Result
}

// NewEndScene creates the end scene.
func NewEndScene(m *Manager, r render.Renderer, keys render.InputManager, logger *zap.Logger) *EndScene {
	return &EndScene{manager: m, renderer: r, keys: keys, logger: logger}
}

// SetResult sets the run shown next time the scene is entered.
func (e *EndScene) SetResult(r Result) {
	e.result = r
}

// Result returns the run being shown.
func (e *EndScene) Result() Result {
	return e.result
}

func (e *EndScene) Enter() error {
	return nil
}

func (e *EndScene) Update(dt float64) error {
	if e.keys.IsKeyJustPressed(render.KeySpace) {
		e.logger.Debug("restarting level")
		return e.manager.SwitchTo(SceneGame)
	}
	return nil
}

func (e *EndScene) Draw(screen render.Image) {
	screen.Fill(endBackground)
	w, h := screen.Size()

	lines := []string{
		e.result.Message(),
		fmt.Sprintf("Boosts used: %d", e.result.Boosts),
		"Press SPACE to play again, ESC to quit",
	}
	y := h/2 - len(lines)*12
	for _, line := range lines {
		tw, _ := e.renderer.MeasureText(line)
		e.renderer.DrawText(screen, line, (w-tw)/2, y)
		y += 24
	}
}
