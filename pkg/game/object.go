package game

import (
	"errors"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/decker502/engine2d/pkg/geom"
)

const defaultObjectName = "gameObject"

var (
	// ErrColliderAttached is returned when a collider that already has an
	// owner is attached again.
	ErrColliderAttached = errors.New("collider is already attached to a game object")
	// ErrNotSpawned is returned by operations that need the outer object
	// value before Spawn has bound it.
	ErrNotSpawned = errors.New("game object has not been spawned")
	// ErrNilCollider is returned when attaching a nil collider.
	ErrNilCollider = errors.New("collider is nil")
)

// GameObject is implemented by every object a Scene can hold.
//
// Concrete kinds embed Object, which supplies no-op versions of every hook
// except Update and Render. Those two must be written by the concrete kind.
type GameObject interface {
	// Base returns the shared state embedded in the concrete object.
	Base() *Object

	// OnInitialize runs once, right after Spawn binds the engine.
	OnInitialize()

	BeforeUpdate()
	Update(deltaTime float64)
	AfterUpdate(deltaTime float64)
	Render(surface Surface)

	OnCollisionEnter(other GameObject)
	OnCollisionStay(other GameObject)
	OnCollisionExit(other GameObject)

	OnTriggerEnter(other GameObject)
	OnTriggerStay(other GameObject)
	OnTriggerExit(other GameObject)
}

// Object carries the state every game object shares: geometry, colliders,
// name, tags and the owning engine.
type Object struct {
	id        uuid.UUID
	name      string
	tags      []string
	position  geom.Position
	velocity  geom.Velocity
	dimension geom.Dimension
	colliders []*Collider

	engine *Engine
	self   GameObject
}

// Spawn binds obj to engine and immediately runs its OnInitialize hook.
// Spawning an already spawned object is a no-op.
//
// Parameters:
//   - e: the engine the object renders through; may be nil in tests
//   - obj: the concrete object, usually a pointer to a struct embedding Object
//
// Returns:
//   - the same obj, for chaining
func Spawn[T GameObject](e *Engine, obj T) T {
	b := obj.Base()
	if b.self != nil {
		return obj
	}
	b.engine = e
	b.self = obj
	if b.id == uuid.Nil {
		b.id = uuid.New()
	}
	obj.OnInitialize()
	return obj
}

func (o *Object) Base() *Object { return o }

func (o *Object) OnInitialize() {}

func (o *Object) BeforeUpdate() {}

func (o *Object) AfterUpdate(float64) {}

func (o *Object) OnCollisionEnter(GameObject) {}

func (o *Object) OnCollisionStay(GameObject) {}

func (o *Object) OnCollisionExit(GameObject) {}

func (o *Object) OnTriggerEnter(GameObject) {}

func (o *Object) OnTriggerStay(GameObject) {}

func (o *Object) OnTriggerExit(GameObject) {}

// ID returns the identifier assigned at spawn time.
func (o *Object) ID() uuid.UUID { return o.id }

// Name returns the object's name, "gameObject" when unset.
func (o *Object) Name() string {
	if o.name == "" {
		return defaultObjectName
	}
	return o.name
}

func (o *Object) SetName(name string) { o.name = name }

// Tags returns a copy of the object's tags in insertion order.
func (o *Object) Tags() []string { return slices.Clone(o.tags) }

// AddTag adds tag unless it is already present.
func (o *Object) AddTag(tag string) {
	if !slices.Contains(o.tags, tag) {
		o.tags = append(o.tags, tag)
	}
}

func (o *Object) HasTag(tag string) bool { return slices.Contains(o.tags, tag) }

func (o *Object) Position() geom.Position { return o.position }

func (o *Object) SetPosition(p geom.Position) { o.position = p }

// Move translates the object by delta.
func (o *Object) Move(delta geom.Position) {
	o.position = o.position.Add(delta)
}

func (o *Object) Velocity() geom.Velocity { return o.velocity }

func (o *Object) SetVelocity(v geom.Velocity) { o.velocity = v }

func (o *Object) Dimension() geom.Dimension { return o.dimension }

// SetDimension changes the object's size. Colliders that inherited the
// previous size keep it.
func (o *Object) SetDimension(d geom.Dimension) { o.dimension = d }

// Rect returns the object's own box in world space.
func (o *Object) Rect() geom.Rect { return geom.NewRect(o.position, o.dimension) }

// Colliders returns the attached colliders in attachment order.
// The slice must not be modified.
func (o *Object) Colliders() []*Collider { return o.colliders }

// AddCollider attaches c to this object. A collider without its own
// dimension takes the object's current dimension.
func (o *Object) AddCollider(c *Collider) error {
	if c == nil {
		return ErrNilCollider
	}
	if o.self == nil {
		return ErrNotSpawned
	}
	if c.owner != nil {
		return ErrColliderAttached
	}
	if !c.resolved {
		c.dimension = o.dimension
		c.resolved = true
	}
	c.owner = o.self
	o.colliders = append(o.colliders, c)
	return nil
}

// Engine returns the engine passed to Spawn.
func (o *Object) Engine() *Engine { return o.engine }

// Logger returns the engine logger scoped to this object.
func (o *Object) Logger() *zap.Logger {
	if o.engine == nil {
		return zap.NewNop()
	}
	return o.engine.log.With(zap.String("object", o.Name()))
}

func (o *Object) stats() *Stats {
	if o.engine == nil {
		return nil
	}
	return &o.engine.stats
}
