// Package rendertest provides in-memory implementations of the render
// interfaces for tests that must not open a window.
package rendertest

import (
	"image"
	"image/color"

	"chosenoffset.com/skyhop/internal/render"
)

func init() {
	if render.NewGeoM == nil {
		render.NewGeoM = func() render.GeoM { return &GeoM{} }
	}
}

// Image records draw calls against a fixed bounds rectangle.
type Image struct {
	Rect      image.Rectangle
	Draws     int
	Filled    color.Color
	TextLines []string
}

// NewImage creates an image of the given size.
func NewImage(width, height int) *Image {
	return &Image{Rect: image.Rect(0, 0, width, height)}
}

func (i *Image) Bounds() image.Rectangle { return i.Rect }

func (i *Image) Size() (int, int) { return i.Rect.Dx(), i.Rect.Dy() }

func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{Rect: r.Intersect(i.Rect)}
}

func (i *Image) Fill(clr color.Color) { i.Filled = clr }

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) { i.Draws++ }

// Renderer creates Images and records text.
type Renderer struct {
	Rects int
}

func (r *Renderer) NewImageFromImage(src image.Image) render.Image {
	return &Image{Rect: src.Bounds()}
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.Rects++
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y int) {
	if img, ok := dst.(*Image); ok {
		img.TextLines = append(img.TextLines, text)
	}
}

func (r *Renderer) MeasureText(text string) (int, int) { return len(text) * 6, 16 }

// GeoM accumulates translate and scale calls.
type GeoM struct {
	TX, TY float64
	SX, SY float64
}

func (g *GeoM) Translate(tx, ty float64) { g.TX += tx; g.TY += ty }

func (g *GeoM) Scale(sx, sy float64) { g.SX, g.SY = sx, sy }

// Keys is a settable InputManager. Just-pressed reports keys set through Tap
// and clears them on read.
type Keys struct {
	Held   map[render.Key]bool
	tapped map[render.Key]bool
}

// NewKeys creates a Keys with nothing held.
func NewKeys() *Keys {
	return &Keys{Held: make(map[render.Key]bool), tapped: make(map[render.Key]bool)}
}

// Press holds key until Release.
func (k *Keys) Press(key render.Key) { k.Held[key] = true }

// Release lets go of key.
func (k *Keys) Release(key render.Key) { delete(k.Held, key) }

// Tap marks key as just pressed for the next IsKeyJustPressed read.
func (k *Keys) Tap(key render.Key) { k.tapped[key] = true }

func (k *Keys) IsKeyPressed(key render.Key) bool { return k.Held[key] }

func (k *Keys) IsKeyJustPressed(key render.Key) bool {
	if k.tapped[key] {
		delete(k.tapped, key)
		return true
	}
	return false
}
