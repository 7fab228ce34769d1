// Package anim holds animation definitions shared across sprites and the
// per-sprite animator that plays them against a frame clock.
package anim

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownAnimation is returned when a key has no registered definition.
var ErrUnknownAnimation = errors.New("unknown animation")

// RepeatForever marks a definition that loops until replaced.
const RepeatForever = -1

// Definition describes a named clip over frames of one sprite sheet.
type Definition struct {
	Key       string
	Sheet     string
	Frames    []int   // Frame indices into the sheet, in play order
	FrameRate float64 // Frames per second
	Repeat    int     // Extra plays after the first; RepeatForever loops
}

// GenerateFrameNumbers returns the inclusive frame range [start, end].
func GenerateFrameNumbers(start, end int) []int {
	if end < start {
		return nil
	}
	frames := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		frames = append(frames, i)
	}
	return frames
}

// Registry stores definitions by key.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Create registers def. Redefining an existing key is tolerated: the first
// definition is kept and Create reports false.
func (r *Registry) Create(def Definition) (bool, error) {
	if def.Key == "" {
		return false, fmt.Errorf("animation key is required")
	}
	if len(def.Frames) == 0 {
		return false, fmt.Errorf("animation %s has no frames", def.Key)
	}
	if def.FrameRate <= 0 {
		return false, fmt.Errorf("animation %s has invalid frame rate %v", def.Key, def.FrameRate)
	}
	if _, exists := r.defs[def.Key]; exists {
		return false, nil
	}
	frames := make([]int, len(def.Frames))
	copy(frames, def.Frames)
	def.Frames = frames
	r.defs[def.Key] = def
	return true, nil
}

// Get returns the definition for key.
func (r *Registry) Get(key string) (Definition, bool) {
	def, ok := r.defs[key]
	return def, ok
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.defs[key]
	return ok
}

// Keys returns all registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.defs))
	for k := range r.defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Animator plays one clip at a time for a single sprite.
type Animator struct {
	registry *Registry

	def     Definition
	loop    bool
	index   int     // Position within def.Frames
	elapsed float64 // Seconds accumulated toward the next frame
	plays   int     // Completed plays of the clip
	done    bool
}

// NewAnimator creates an animator resolving keys through registry.
func NewAnimator(registry *Registry) *Animator {
	return &Animator{registry: registry}
}

// Play starts the clip named key. With loop set the clip wraps forever;
// otherwise it plays the definition's repeat count (once for looping
// definitions) and holds its last frame. The hold only starts after a full
// play-through; a non-looping clip never freezes on its first frame.
// Playing the clip that is already running in the same mode is a no-op so
// frame progress is kept.
func (a *Animator) Play(key string, loop bool) error {
	def, ok := a.registry.Get(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAnimation, key)
	}
	if a.def.Key == key && a.loop == loop && !a.done {
		return nil
	}
	a.def = def
	a.loop = loop
	a.index = 0
	a.elapsed = 0
	a.plays = 0
	a.done = false
	return nil
}

// Update advances the clip by dt seconds.
func (a *Animator) Update(dt float64) {
	if a.def.Key == "" || a.done {
		return
	}
	step := 1 / a.def.FrameRate
	a.elapsed += dt
	for a.elapsed >= step && !a.done {
		a.elapsed -= step
		a.advance()
	}
}

func (a *Animator) advance() {
	a.index++
	if a.index < len(a.def.Frames) {
		return
	}
	if a.loop {
		a.index = 0
		return
	}
	a.plays++
	repeats := a.def.Repeat
	if repeats < 0 {
		repeats = 0
	}
	if a.plays > repeats {
		a.index = len(a.def.Frames) - 1
		a.done = true
		return
	}
	a.index = 0
}

// Key returns the key of the current clip, or "" before the first Play.
func (a *Animator) Key() string {
	return a.def.Key
}

// Sheet returns the sprite sheet of the current clip.
func (a *Animator) Sheet() string {
	return a.def.Sheet
}

// Looping reports whether the current clip was started in loop mode.
func (a *Animator) Looping() bool {
	return a.loop
}

// Done reports whether a non-looping clip has finished and is holding.
func (a *Animator) Done() bool {
	return a.done
}

// Frame returns the current sheet frame index, or -1 when nothing plays.
func (a *Animator) Frame() int {
	if a.def.Key == "" {
		return -1
	}
	return a.def.Frames[a.index]
}
