package assets

import (
	"image"
	"path/filepath"
	"testing"

	"chosenoffset.com/skyhop/internal/anim"
	"chosenoffset.com/skyhop/internal/render/rendertest"
)

func TestGeneratePlayerSheet(t *testing.T) {
	img, err := GeneratePlayerSheet("red")
	if err != nil {
		t.Fatalf("GeneratePlayerSheet failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != PlayerFrameWidth*PlayerFrameCount || b.Dy() != PlayerFrameHeight {
		t.Errorf("Unexpected sheet size %dx%d", b.Dx(), b.Dy())
	}

	// Body pixel of the first frame uses the skin color.
	if got := img.RGBAAt(6, 8); got != SkinPalette["red"] {
		t.Errorf("Expected body color %v, got %v", SkinPalette["red"], got)
	}

	if _, err := GeneratePlayerSheet("plaid"); err == nil {
		t.Error("Expected error for unknown skin")
	}
}

func TestBoostSheetRestFrameHasNoGlow(t *testing.T) {
	img := GenerateBoostSheet()
	if img.Bounds().Dx() != BoostFrameWidth*BoostFrameCount {
		t.Fatalf("Unexpected width %d", img.Bounds().Dx())
	}
	if got := img.RGBAAt(10, 1); got != Palette.BoostBase {
		t.Errorf("Frame 0 should be plain, got %v", got)
	}
	if got := img.RGBAAt(BoostFrameWidth+10, 1); got == Palette.BoostBase {
		t.Error("Frame 1 should glow")
	}
}

func TestLoadPlaceholders(t *testing.T) {
	lib := NewLibrary(&rendertest.Renderer{})
	reg := anim.NewRegistry()

	if err := LoadPlaceholders(lib, reg, []string{"red", "blue"}); err != nil {
		t.Fatalf("LoadPlaceholders failed: %v", err)
	}

	for _, name := range []string{"player-red", "player-blue", BoostSheet, GroundSheet} {
		if _, ok := lib.Get(name); !ok {
			t.Errorf("Expected sheet %s", name)
		}
	}
	for _, key := range []string{"red-idle-left", "red-idle-right", "red-run-left", "red-run-right", "blue-run-left"} {
		if !reg.Has(key) {
			t.Errorf("Expected animation %s", key)
		}
	}

	w, h, err := lib.FrameSize(BoostSheet)
	if err != nil || w != BoostFrameWidth || h != BoostFrameHeight {
		t.Errorf("FrameSize = %v, %v, %v", w, h, err)
	}

	sheet, _ := lib.Get(BoostSheet)
	frame, err := sheet.Frame(2)
	if err != nil {
		t.Fatal(err)
	}
	want := image.Rect(2*BoostFrameWidth, 0, 3*BoostFrameWidth, BoostFrameHeight)
	if frame.Bounds() != want {
		t.Errorf("Frame(2) bounds = %v, want %v", frame.Bounds(), want)
	}
	if _, err := sheet.Frame(BoostFrameCount); err == nil {
		t.Error("Expected out of range error")
	}
}

func TestLibraryAddRejectsMismatchedFrames(t *testing.T) {
	lib := NewLibrary(&rendertest.Renderer{})
	img := image.NewRGBA(image.Rect(0, 0, 30, 8))
	if _, err := lib.Add("odd", img, 16, 8); err == nil {
		t.Error("Expected error for width not divisible by frame width")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ground.png")
	if err := SavePNG(GenerateGroundSheet(), path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
}
