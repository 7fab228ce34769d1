// Package assets generates the placeholder sprite sheets the game draws and
// keeps them, uploaded to the renderer, in a named library.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"sort"
)

// Sheet names and frame geometry.
const (
	BoostSheet  = "boost-platform"
	GroundSheet = "ground"

	PlayerFrameWidth  = 16
	PlayerFrameHeight = 24
	PlayerFrameCount  = 12

	BoostFrameWidth  = 32
	BoostFrameHeight = 8
	BoostFrameCount  = 5

	GroundFrameWidth  = 64
	GroundFrameHeight = 16
)

// Player sheet layout: two idle frames per facing, then four run frames per facing.
const (
	frameIdleRight = 0
	frameIdleLeft  = 2
	frameRunRight  = 4
	frameRunLeft   = 8
)

// SkinPalette maps player color tags to their body color.
var SkinPalette = map[string]color.RGBA{
	"red":    {220, 60, 60, 255},
	"blue":   {60, 110, 230, 255},
	"green":  {70, 200, 90, 255},
	"yellow": {235, 200, 50, 255},
	"purple": {150, 80, 200, 255},
}

// Palette holds non-skin colors.
var Palette = struct {
	Outline     color.RGBA
	Eye         color.RGBA
	BoostBase   color.RGBA
	BoostGlow   color.RGBA
	GroundTop   color.RGBA
	GroundFill  color.RGBA
	Sky         color.RGBA
	Goal        color.RGBA
	Transparent color.RGBA
}{
	Outline:     color.RGBA{20, 20, 30, 255},
	Eye:         color.RGBA{250, 250, 250, 255},
	BoostBase:   color.RGBA{90, 90, 110, 255},
	BoostGlow:   color.RGBA{80, 230, 240, 255},
	GroundTop:   color.RGBA{90, 170, 70, 255},
	GroundFill:  color.RGBA{120, 85, 55, 255},
	Sky:         color.RGBA{40, 130, 220, 255},
	Goal:        color.RGBA{255, 215, 0, 255},
	Transparent: color.RGBA{0, 0, 0, 0},
}

// Skins returns the known color tags in sorted order.
func Skins() []string {
	names := make([]string, 0, len(SkinPalette))
	for name := range SkinPalette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PlayerSheetName returns the sheet name for a skin.
func PlayerSheetName(skin string) string {
	return "player-" + skin
}

// GeneratePlayerSheet draws the idle and run frames for one skin.
func GeneratePlayerSheet(skin string) (*image.RGBA, error) {
	body, ok := SkinPalette[skin]
	if !ok {
		return nil, fmt.Errorf("unknown skin color: %s", skin)
	}

	frames := make([]*image.RGBA, PlayerFrameCount)
	for i := 0; i < 2; i++ {
		// Idle frames bob the body by one pixel.
		frames[frameIdleRight+i] = playerFrame(body, true, i, -1)
		frames[frameIdleLeft+i] = playerFrame(body, false, i, -1)
	}
	for i := 0; i < 4; i++ {
		frames[frameRunRight+i] = playerFrame(body, true, 0, i)
		frames[frameRunLeft+i] = playerFrame(body, false, 0, i)
	}
	return strip(frames, PlayerFrameWidth, PlayerFrameHeight), nil
}

// playerFrame draws one frame. stride < 0 means standing legs.
func playerFrame(body color.RGBA, facingRight bool, bob, stride int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PlayerFrameWidth, PlayerFrameHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{Palette.Transparent}, image.Point{}, draw.Src)

	top := 2 + bob
	fillRect(img, image.Rect(3, top, 13, top+14), Palette.Outline)
	fillRect(img, image.Rect(4, top+1, 12, top+13), body)

	eyeX := 5
	if facingRight {
		eyeX = 9
	}
	fillRect(img, image.Rect(eyeX, top+3, eyeX+2, top+6), Palette.Eye)

	// Legs: offsets per run stride, standing when stride < 0.
	leftLeg, rightLeg := 0, 0
	if stride >= 0 {
		offsets := []int{-2, 0, 2, 0}
		leftLeg = offsets[stride]
		rightLeg = -offsets[stride]
	}
	legTop := top + 14
	fillRect(img, image.Rect(5+leftLeg, legTop, 7+leftLeg, PlayerFrameHeight), Darken(body, 0.6))
	fillRect(img, image.Rect(9+rightLeg, legTop, 11+rightLeg, PlayerFrameHeight), Darken(body, 0.6))
	return img
}

// GenerateBoostSheet draws the boost platform: frame 0 at rest, 1..4 glowing.
func GenerateBoostSheet() *image.RGBA {
	frames := make([]*image.RGBA, BoostFrameCount)
	for i := range frames {
		img := image.NewRGBA(image.Rect(0, 0, BoostFrameWidth, BoostFrameHeight))
		fillRect(img, img.Bounds(), Palette.BoostBase)
		if i > 0 {
			glow := Lighten(Palette.BoostGlow, float64(i-1)*0.2)
			fillRect(img, image.Rect(2, 1, BoostFrameWidth-2, 1+i), glow)
		}
		for x := 0; x < BoostFrameWidth; x += 4 {
			img.Set(x, BoostFrameHeight-1, Palette.Outline)
		}
		frames[i] = img
	}
	return strip(frames, BoostFrameWidth, BoostFrameHeight)
}

// GenerateGroundSheet draws a single grass-topped ground frame.
func GenerateGroundSheet() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, GroundFrameWidth, GroundFrameHeight))
	fillRect(img, img.Bounds(), Palette.GroundFill)
	fillRect(img, image.Rect(0, 0, GroundFrameWidth, 4), Palette.GroundTop)
	for x := 3; x < GroundFrameWidth; x += 7 {
		img.Set(x, 8+(x%5), Darken(Palette.GroundFill, 0.7))
	}
	return img
}

// strip lays frames out left to right in a single row.
func strip(frames []*image.RGBA, frameW, frameH int) *image.RGBA {
	sheet := image.NewRGBA(image.Rect(0, 0, frameW*len(frames), frameH))
	draw.Draw(sheet, sheet.Bounds(), &image.Uniform{Palette.Transparent}, image.Point{}, draw.Src)
	for i, f := range frames {
		if f == nil {
			continue
		}
		dest := image.Rect(i*frameW, 0, (i+1)*frameW, frameH)
		draw.Draw(sheet, dest, f, image.Point{}, draw.Src)
	}
	return sheet
}

func fillRect(img *image.RGBA, r image.Rectangle, col color.RGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{col}, image.Point{}, draw.Src)
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
