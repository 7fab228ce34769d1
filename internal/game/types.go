package game

import (
	"fmt"

	"chosenoffset.com/skyhop/internal/render"
)

// Scene names.
const (
	SceneGame = "game"
	SceneEnd  = "end"
)

// frameDelta is the fixed step per Update; ebiten ticks at 60 TPS.
const frameDelta = 1.0 / 60.0

// Scene is one screen of the game driven by the Manager.
type Scene interface {
	// Enter (re)initializes the scene when it becomes current.
	Enter() error
	Update(dt float64) error
	Draw(screen render.Image)
}

// Outcome is how a level run ended.
type Outcome int

const (
	OutcomeWon Outcome = iota
	OutcomeLost
)

func (o Outcome) String() string {
	if o == OutcomeWon {
		return "won"
	}
	return "lost"
}

// Result summarizes a finished level run for the end scene.
type Result struct {
	Outcome Outcome
	Level   string
	Time    float64 // Seconds spent in the level
	Boosts  int
}

// Message returns the headline shown on the end scene.
func (r Result) Message() string {
	if r.Outcome == OutcomeWon {
		return fmt.Sprintf("You reached the top of %s in %.1fs!", r.Level, r.Time)
	}
	return "You fell off the world."
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}
