package assets

import (
	"fmt"
	"image"
	"sort"

	"chosenoffset.com/skyhop/internal/anim"
	"chosenoffset.com/skyhop/internal/render"
)

// Sheet is an uploaded sprite sheet with frames laid out in one row.
type Sheet struct {
	Name        string
	Image       render.Image
	FrameWidth  int
	FrameHeight int
	FrameCount  int
}

// Frame returns the sub-image for frame i.
func (s *Sheet) Frame(i int) (render.Image, error) {
	if i < 0 || i >= s.FrameCount {
		return nil, fmt.Errorf("frame %d out of range for sheet %s (%d frames)", i, s.Name, s.FrameCount)
	}
	x := i * s.FrameWidth
	return s.Image.SubImage(image.Rect(x, 0, x+s.FrameWidth, s.FrameHeight)), nil
}

// Library holds sheets by name.
type Library struct {
	renderer render.Renderer
	sheets   map[string]*Sheet
}

// NewLibrary creates an empty library that uploads through r.
func NewLibrary(r render.Renderer) *Library {
	return &Library{renderer: r, sheets: make(map[string]*Sheet)}
}

// Add uploads img as a sheet. The frame count is derived from the image width.
func (l *Library) Add(name string, img image.Image, frameW, frameH int) (*Sheet, error) {
	if frameW <= 0 || frameH <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions for %s: %dx%d", name, frameW, frameH)
	}
	b := img.Bounds()
	if b.Dx()%frameW != 0 || b.Dy() != frameH {
		return nil, fmt.Errorf("sheet %s is %dx%d, not a row of %dx%d frames", name, b.Dx(), b.Dy(), frameW, frameH)
	}
	sheet := &Sheet{
		Name:        name,
		Image:       l.renderer.NewImageFromImage(img),
		FrameWidth:  frameW,
		FrameHeight: frameH,
		FrameCount:  b.Dx() / frameW,
	}
	l.sheets[name] = sheet
	return sheet, nil
}

// Get returns the named sheet.
func (l *Library) Get(name string) (*Sheet, bool) {
	s, ok := l.sheets[name]
	return s, ok
}

// FrameSize returns a sheet's frame size, used to size physics bodies.
func (l *Library) FrameSize(name string) (w, h float64, err error) {
	s, ok := l.sheets[name]
	if !ok {
		return 0, 0, fmt.Errorf("sheet not found: %s", name)
	}
	return float64(s.FrameWidth), float64(s.FrameHeight), nil
}

// Names returns the loaded sheet names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.sheets))
	for n := range l.sheets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadPlaceholders generates and uploads every placeholder sheet for the
// given skins, and registers each skin's player animations.
func LoadPlaceholders(l *Library, reg *anim.Registry, skins []string) error {
	for _, skin := range skins {
		img, err := GeneratePlayerSheet(skin)
		if err != nil {
			return err
		}
		if _, err := l.Add(PlayerSheetName(skin), img, PlayerFrameWidth, PlayerFrameHeight); err != nil {
			return err
		}
		for _, def := range PlayerAnimations(skin) {
			if _, err := reg.Create(def); err != nil {
				return fmt.Errorf("failed to register %s: %w", def.Key, err)
			}
		}
	}
	if _, err := l.Add(BoostSheet, GenerateBoostSheet(), BoostFrameWidth, BoostFrameHeight); err != nil {
		return err
	}
	if _, err := l.Add(GroundSheet, GenerateGroundSheet(), GroundFrameWidth, GroundFrameHeight); err != nil {
		return err
	}
	return nil
}

// PlayerAnimations returns the four clips for one skin, keyed by the
// {skin}-{idle|run}-{left|right} convention.
func PlayerAnimations(skin string) []anim.Definition {
	sheet := PlayerSheetName(skin)
	return []anim.Definition{
		{Key: skin + "-idle-left", Sheet: sheet, Frames: anim.GenerateFrameNumbers(frameIdleLeft, frameIdleLeft+1), FrameRate: 3, Repeat: anim.RepeatForever},
		{Key: skin + "-idle-right", Sheet: sheet, Frames: anim.GenerateFrameNumbers(frameIdleRight, frameIdleRight+1), FrameRate: 3, Repeat: anim.RepeatForever},
		{Key: skin + "-run-left", Sheet: sheet, Frames: anim.GenerateFrameNumbers(frameRunLeft, frameRunLeft+3), FrameRate: 10, Repeat: anim.RepeatForever},
		{Key: skin + "-run-right", Sheet: sheet, Frames: anim.GenerateFrameNumbers(frameRunRight, frameRunRight+3), FrameRate: 10, Repeat: anim.RepeatForever},
	}
}
