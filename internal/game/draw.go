package game

import (
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"chosenoffset.com/skyhop/internal/arcade"
	"chosenoffset.com/skyhop/internal/assets"
	"chosenoffset.com/skyhop/internal/render"
)

var debugColor = color.RGBA{255, 0, 255, 255}

// Draw renders the level and HUD.
func (s *PlayScene) Draw(screen render.Image) {
	screen.Fill(assets.Palette.Sky)
	s.drawGoal(screen)
	s.drawSprites(screen)
	if s.cfg.Physics.Debug {
		s.drawBodies(screen)
	}
	s.drawUI(screen)
}

func (s *PlayScene) drawGoal(screen render.Image) {
	g := s.goal
	s.renderer.FillRect(screen, float32(g.X), float32(g.Y), float32(g.W), float32(g.H), assets.Palette.Goal)
}

func (s *PlayScene) drawSprites(screen render.Image) {
	for _, sp := range s.world.Sprites() {
		sheetName, frame := sp.Appearance()
		sheet, ok := s.library.Get(sheetName)
		if !ok {
			continue
		}
		img, err := sheet.Frame(frame)
		if err != nil {
			s.logger.Debug("skipping sprite", zap.Error(err))
			continue
		}

		sx, sy := sp.Scale()
		x, y := sp.Position()
		op := &render.DrawImageOptions{GeoM: render.NewGeoM()}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(x-float64(sheet.FrameWidth)*sx/2, y-float64(sheet.FrameHeight)*sy/2)
		screen.DrawImage(img, op)
	}
}

// drawBodies outlines every physics body.
func (s *PlayScene) drawBodies(screen render.Image) {
	for _, sp := range s.world.Sprites() {
		s.outline(screen, sp.Bounds())
	}
}

func (s *PlayScene) outline(screen render.Image, r arcade.Rect) {
	x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
	s.renderer.FillRect(screen, x, y, w, 1, debugColor)
	s.renderer.FillRect(screen, x, y+h-1, w, 1, debugColor)
	s.renderer.FillRect(screen, x, y, 1, h, debugColor)
	s.renderer.FillRect(screen, x+w-1, y, 1, h, debugColor)
}

func (s *PlayScene) drawUI(screen render.Image) {
	state := s.machine.Current()
	s.renderer.DrawText(screen, fmt.Sprintf("%s  %.1fs  boosts: %d", s.cfg.Level.Name, s.elapsed, s.boosts), 8, 8)
	if s.cfg.Physics.Debug {
		vx, vy := s.player.Velocity()
		s.renderer.DrawText(screen, fmt.Sprintf("state: %s facing: %s v=(%.0f, %.0f) grounded: %v",
			state.Kind, state.Facing, vx, vy, s.player.Grounded()), 8, 24)
	}

	// On-screen messages
	y := 50
	for _, msg := range s.messages {
		s.renderer.DrawText(screen, msg.Text, 20, y)
		y += 20
	}
}
