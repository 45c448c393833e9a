package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("scene: unknown scene")

// DefaultSceneName is used when no scene is requested
const DefaultSceneName = "random"

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // One-line description
}

type sceneEntry struct {
	info    SceneInfo
	factory func(seed int64) *Scene
}

var builtinScenes = map[string]sceneEntry{
	"random": {
		info: SceneInfo{
			ID:          "random",
			DisplayName: "Random spheres",
			Description: "Book cover scene: 484 small random spheres around three large ones",
		},
		factory: NewRandomScene,
	},
	"basic": {
		info: SceneInfo{
			ID:          "basic",
			DisplayName: "Basic",
			Description: "Diffuse, metal and hollow glass spheres over a ground sphere",
		},
		factory: func(int64) *Scene { return NewBasicScene() },
	},
}

// New creates a scene by name; an empty name selects the default scene
func New(name string, seed int64) (*Scene, error) {
	if name == "" {
		name = DefaultSceneName
	}
	entry, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return entry.factory(seed), nil
}

// List returns every built-in scene sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, entry := range builtinScenes {
		scenes = append(scenes, entry.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}
