package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"chosenoffset.com/skyhop/internal/assets"
)

func main() {
	outDir := flag.String("out", "assets/placeholders", "directory to write the sprite sheets to")
	flag.Parse()

	fmt.Println("Skyhop Placeholder Graphics Generator")
	fmt.Println("=====================================")
	fmt.Println()

	if err := generate(*outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done! Placeholder graphics are ready to use.")
}

func generate(outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	sheets := map[string]image.Image{
		assets.BoostSheet:  assets.GenerateBoostSheet(),
		assets.GroundSheet: assets.GenerateGroundSheet(),
	}
	for _, skin := range assets.Skins() {
		img, err := assets.GeneratePlayerSheet(skin)
		if err != nil {
			return err
		}
		sheets[assets.PlayerSheetName(skin)] = img
	}

	for name, img := range sheets {
		path := filepath.Join(outDir, name+".png")
		if err := assets.SavePNG(img, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
		b := img.Bounds()
		fmt.Printf("  wrote %s (%dx%d)\n", path, b.Dx(), b.Dy())
	}
	return nil
}
