package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LevelEntry is a config file found in the data directory.
type LevelEntry struct {
	Name      string // Level name from the file, or the file name without extension
	Path      string
	Platforms int
}

// ScanDataDirectory finds the YAML config files in dataPath. Files that
// cannot be parsed are skipped; only the level section is read.
func ScanDataDirectory(dataPath string) ([]LevelEntry, error) {
	entries, err := os.ReadDir(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var levels []LevelEntry
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dataPath, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var doc struct {
			Level LevelConfig `yaml:"level"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			continue
		}

		levelName := doc.Level.Name
		if levelName == "" {
			levelName = strings.TrimSuffix(name, filepath.Ext(name))
		}
		levels = append(levels, LevelEntry{
			Name:      levelName,
			Path:      path,
			Platforms: len(doc.Level.Platforms),
		})
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].Path < levels[j].Path })
	return levels, nil
}
