package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Identifier accepted by NewSceneByID
	DisplayName string // Human readable name
	Description string
}

// sceneBuilder constructs a scene for an aspect ratio and seed
type sceneBuilder func(aspectRatio float64, seed int64) *Scene

var builtInScenes = map[string]struct {
	description string
	build       sceneBuilder
}{
	"random": {"Many small random spheres around three large feature spheres", NewRandomScene},
	"simple": {"Diffuse, fuzzy gold and glass spheres on a large ground sphere", NewSimpleScene},
	"moving": {"Random scene with diffuse spheres moving upward for motion blur", NewMovingScene},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for id, entry := range builtInScenes {
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: entry.description,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// NewSceneByID builds the built-in scene with the given ID
func NewSceneByID(id string, aspectRatio float64, seed int64) (*Scene, error) {
	entry, ok := builtInScenes[strings.ToLower(id)]
	if !ok {
		ids := make([]string, 0, len(builtInScenes))
		for _, info := range ListScenes() {
			ids = append(ids, info.ID)
		}
		return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(ids, ", "))
	}
	return entry.build(aspectRatio, seed), nil
}

// titleCase converts a filename-style string to title case
// e.g., "many-spheres" -> "Many Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
