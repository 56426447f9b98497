// Package scenes turns scene configuration into populated game scenes.
package scenes

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/decker502/engine2d/pkg/config"
	"github.com/decker502/engine2d/pkg/game"
	"github.com/decker502/engine2d/pkg/objects"
)

// ErrSceneNotFound is returned by Select for an unknown scene name.
var ErrSceneNotFound = errors.New("scene not found")

// Loader builds scenes with a kind registry.
type Loader struct {
	registry *objects.Registry
	deps     objects.Deps
	log      *zap.Logger
}

// NewLoader creates a loader. A nil registry uses the built-in kinds.
func NewLoader(registry *objects.Registry, deps objects.Deps, log *zap.Logger) *Loader {
	if registry == nil {
		registry = objects.NewRegistry()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{registry: registry, deps: deps, log: log.Named("scenes")}
}

// Validate checks that every object kind in cfg is registered.
func (l *Loader) Validate(cfg *config.EngineConfig) error {
	var errs []error
	for i, sc := range cfg.Scenes {
		for j, oc := range sc.Objects {
			if !l.registry.Has(oc.Kind) {
				errs = append(errs, fmt.Errorf("scenes[%d].objects[%d]: unknown object kind %q (known: %v)",
					i, j, oc.Kind, l.registry.Kinds()))
			}
		}
	}
	return errors.Join(errs...)
}

// Build creates one scene and spawns its objects into e.
func (l *Loader) Build(e *game.Engine, sc config.SceneConfig) (*game.Scene, error) {
	scene := game.NewScene(sc.Name, sc.Tags...)
	for i, oc := range sc.Objects {
		obj, err := l.registry.Build(e, oc, l.deps)
		if err != nil {
			return nil, fmt.Errorf("scene %q object %d: %w", sc.Name, i, err)
		}
		scene.AddObject(obj)
	}
	l.log.Debug("scene built", zap.String("scene", sc.Name), zap.Int("objects", scene.Len()))
	return scene, nil
}

// LoadAll validates cfg, builds every scene and registers them with e in
// file order. Nothing is registered when any scene fails.
func (l *Loader) LoadAll(e *game.Engine, cfg *config.EngineConfig) ([]*game.Scene, error) {
	if err := l.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid scenes: %w", err)
	}

	built := make([]*game.Scene, 0, len(cfg.Scenes))
	for _, sc := range cfg.Scenes {
		scene, err := l.Build(e, sc)
		if err != nil {
			return nil, err
		}
		built = append(built, scene)
	}
	for _, scene := range built {
		e.AddScene(scene)
	}
	l.log.Info("scenes loaded", zap.Int("count", len(built)))
	return built, nil
}

// Select makes the scene called name current. An empty name keeps the
// current selection.
func Select(e *game.Engine, name string) error {
	if name == "" {
		return nil
	}
	for _, scene := range e.Scenes() {
		if scene.Name() == name {
			e.SetCurrentScene(scene)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrSceneNotFound, name)
}
