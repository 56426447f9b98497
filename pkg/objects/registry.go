package objects

import (
	"fmt"
	"image/color"
	"maps"
	"slices"

	"github.com/decker502/engine2d/pkg/config"
	"github.com/decker502/engine2d/pkg/game"
)

// Deps are the collaborators kinds may need besides the engine.
type Deps struct {
	Prefs Preferences
}

// Factory creates an unspawned object of one kind. The registry applies the
// shared fields (name, tags, geometry, colliders) afterwards.
type Factory func(cfg config.ObjectConfig, deps Deps) (game.GameObject, error)

// Registry maps kind names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry holding the built-in kinds.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register("block", func(cfg config.ObjectConfig, _ Deps) (game.GameObject, error) {
		s, err := sprite(cfg, color.Gray{Y: 0x8b})
		return &Block{Sprite: s}, err
	})
	r.Register("mover", func(cfg config.ObjectConfig, _ Deps) (game.GameObject, error) {
		s, err := sprite(cfg, color.NRGBA{R: 0xff, G: 0x45, A: 0xff})
		return &Mover{Sprite: s}, err
	})
	r.Register("player", func(cfg config.ObjectConfig, _ Deps) (game.GameObject, error) {
		s, err := sprite(cfg, color.NRGBA{R: 0x32, G: 0xcd, B: 0x32, A: 0xff})
		return &Player{Sprite: s, Speed: cfg.Speed}, err
	})
	r.Register("zone", func(cfg config.ObjectConfig, _ Deps) (game.GameObject, error) {
		s, err := sprite(cfg, color.NRGBA{R: 0x1e, G: 0x90, B: 0xff, A: 0x60})
		return &Zone{Sprite: s}, err
	})
	r.Register("pickup", func(cfg config.ObjectConfig, _ Deps) (game.GameObject, error) {
		s, err := sprite(cfg, color.NRGBA{R: 0xff, G: 0xd7, A: 0xff})
		return &Pickup{Sprite: s}, err
	})
	r.Register("controls", func(cfg config.ObjectConfig, deps Deps) (game.GameObject, error) {
		return &Controls{Prefs: deps.Prefs}, nil
	})
	return r
}

// Register adds or replaces the factory for kind.
func (r *Registry) Register(kind string, f Factory) {
	r.factories[kind] = f
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind string) bool {
	_, ok := r.factories[kind]
	return ok
}

// Kinds lists the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	return slices.Sorted(maps.Keys(r.factories))
}

// Build creates, spawns and equips an object from cfg.
//
// Parameters:
//   - e: engine the object is spawned into; may be nil in tests
//   - cfg: object configuration, already validated by the config package
//   - deps: shared collaborators
func (r *Registry) Build(e *game.Engine, cfg config.ObjectConfig, deps Deps) (game.GameObject, error) {
	f, ok := r.factories[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown object kind %q", cfg.Kind)
	}
	obj, err := f(cfg, deps)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %q: %w", cfg.Kind, cfg.Name, err)
	}

	b := obj.Base()
	if cfg.Name != "" {
		b.SetName(cfg.Name)
	}
	for _, tag := range cfg.Tags {
		b.AddTag(tag)
	}
	b.SetPosition(cfg.Position)
	b.SetDimension(cfg.Dimension)
	b.SetVelocity(cfg.Velocity)

	game.Spawn(e, obj)

	for i, cc := range cfg.Colliders {
		c := game.NewBoxCollider(game.ColliderOptions{
			Offset:    cc.Offset,
			Dimension: cc.Dimension,
			Visible:   cc.Visible,
			Trigger:   cc.Trigger,
		})
		if err := b.AddCollider(c); err != nil {
			return nil, fmt.Errorf("failed to attach collider %d to %q: %w", i, b.Name(), err)
		}
	}
	return obj, nil
}

func sprite(cfg config.ObjectConfig, fallback color.Color) (Sprite, error) {
	s := Sprite{Fill: fallback, Cue: cfg.Cue}
	if cfg.Color != "" {
		c, err := config.ParseColor(cfg.Color)
		if err != nil {
			return Sprite{}, err
		}
		s.Fill = c
	}
	return s, nil
}
