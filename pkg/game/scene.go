package game

import (
	"slices"

	"go.uber.org/zap"
)

// Scene owns an ordered list of game objects and drives the per-frame
// detection, update and render passes over them.
//
// Insertion order is the render order (back to front). Adding or removing
// objects while a pass is running, for example from inside a collision hook,
// is deferred until the outermost pass returns; objects removed mid-pass are
// skipped for the remainder of that pass.
type Scene struct {
	name string
	tags []string

	objects []GameObject

	depth   int
	pending []sceneMutation
	removed map[GameObject]bool

	log *zap.Logger
}

type sceneMutation struct {
	obj GameObject
	add bool
}

// NewScene creates an empty scene.
func NewScene(name string, tags ...string) *Scene {
	return &Scene{
		name: name,
		tags: tags,
		log:  zap.NewNop(),
	}
}

func (s *Scene) Name() string { return s.name }

func (s *Scene) Tags() []string { return slices.Clone(s.tags) }

// Len returns the number of objects currently in the scene.
func (s *Scene) Len() int { return len(s.objects) }

// Objects returns a snapshot of the scene's objects in insertion order.
func (s *Scene) Objects() []GameObject { return slices.Clone(s.objects) }

// ObjectIndex returns the position of obj in the scene, or -1.
func (s *Scene) ObjectIndex(obj GameObject) int {
	return slices.Index(s.objects, obj)
}

// FindByName returns the first object with the given name.
func (s *Scene) FindByName(name string) GameObject {
	for _, obj := range s.objects {
		if obj.Base().Name() == name {
			return obj
		}
	}
	return nil
}

// FindByTag returns every object carrying tag.
func (s *Scene) FindByTag(tag string) []GameObject {
	var found []GameObject
	for _, obj := range s.objects {
		if obj.Base().HasTag(tag) {
			found = append(found, obj)
		}
	}
	return found
}

// AddObject appends obj to the scene and returns its index. Adding an
// object that is already present returns its existing index. While a pass
// is running the insertion is queued and -1 is returned.
func (s *Scene) AddObject(obj GameObject) int {
	if obj == nil {
		return -1
	}
	if s.depth > 0 {
		if !s.willContain(obj) {
			s.pending = append(s.pending, sceneMutation{obj: obj, add: true})
			obj.Base().stats().deferred()
			s.log.Debug("deferred add", zap.String("object", obj.Base().Name()))
		}
		return s.ObjectIndex(obj)
	}
	return s.add(obj)
}

// RemoveObject removes obj by identity and reports whether it was present.
// Nothing outside the scene's own list is destroyed.
func (s *Scene) RemoveObject(obj GameObject) bool {
	if obj == nil {
		return false
	}
	if s.depth > 0 {
		if !s.willContain(obj) {
			return false
		}
		s.pending = append(s.pending, sceneMutation{obj: obj})
		s.removed[obj] = true
		obj.Base().stats().deferred()
		s.log.Debug("deferred remove", zap.String("object", obj.Base().Name()))
		return true
	}
	return s.remove(obj)
}

func (s *Scene) add(obj GameObject) int {
	if idx := s.ObjectIndex(obj); idx != -1 {
		return idx
	}
	s.objects = append(s.objects, obj)
	return len(s.objects) - 1
}

func (s *Scene) remove(obj GameObject) bool {
	idx := s.ObjectIndex(obj)
	if idx == -1 {
		return false
	}
	s.objects = slices.Delete(s.objects, idx, idx+1)

	// Overlap memory about obj is meaningless once it left the scene.
	for _, other := range s.objects {
		for _, c := range other.Base().colliders {
			c.Forget(obj)
		}
	}
	for _, c := range obj.Base().colliders {
		c.Reset()
	}
	return true
}

// willContain reports whether obj will be in the scene once the queued
// mutations are applied.
func (s *Scene) willContain(obj GameObject) bool {
	present := s.ObjectIndex(obj) != -1
	for _, m := range s.pending {
		if m.obj == obj {
			present = m.add
		}
	}
	return present
}

func (s *Scene) begin() {
	if s.depth == 0 && s.removed == nil {
		s.removed = make(map[GameObject]bool)
	}
	s.depth++
}

func (s *Scene) end() {
	s.depth--
	if s.depth > 0 {
		return
	}
	pending := s.pending
	s.pending = nil
	clear(s.removed)
	for _, m := range pending {
		if m.add {
			s.add(m.obj)
		} else {
			s.remove(m.obj)
		}
	}
}

func (s *Scene) live(obj GameObject) bool {
	return !s.removed[obj]
}

// Render draws every object in insertion order, each followed by its
// visible colliders.
func (s *Scene) Render(surface Surface) {
	s.begin()
	defer s.end()

	for _, obj := range s.objects {
		if !s.live(obj) {
			continue
		}
		obj.Render(surface)
		for _, c := range obj.Base().colliders {
			c.Render(surface)
		}
	}
}

// BeforeUpdate runs the detection pass: every collider of every object is
// tested against every object in the scene, itself included. Each object's
// own BeforeUpdate hook runs after its colliders were tested.
func (s *Scene) BeforeUpdate() {
	s.begin()
	defer s.end()

	for _, a := range s.objects {
		for _, c := range a.Base().colliders {
			for _, b := range s.objects {
				if !s.live(a) {
					break
				}
				if !s.live(b) {
					continue
				}
				c.DetectCollision(b)
			}
		}
		if s.live(a) {
			a.BeforeUpdate()
		}
	}
}

// Update forwards deltaTime to every object in insertion order.
func (s *Scene) Update(deltaTime float64) {
	s.begin()
	defer s.end()

	for _, obj := range s.objects {
		if s.live(obj) {
			obj.Update(deltaTime)
		}
	}
}

// AfterUpdate forwards deltaTime to every object's AfterUpdate hook.
func (s *Scene) AfterUpdate(deltaTime float64) {
	s.begin()
	defer s.end()

	for _, obj := range s.objects {
		if s.live(obj) {
			obj.AfterUpdate(deltaTime)
		}
	}
}
