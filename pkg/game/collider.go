package game

import (
	"image/color"
	"slices"

	"github.com/decker502/engine2d/pkg/geom"
)

var colliderDebugColor = color.NRGBA{R: 0, G: 255, B: 0, A: 128}

// ColliderOptions configures a box collider.
type ColliderOptions struct {
	// Offset is relative to the owner's position.
	Offset geom.Position
	// Dimension, when nil, is taken from the owner at attach time.
	Dimension *geom.Dimension
	// Visible draws a debug outline during render.
	Visible bool
	// Trigger reports overlaps through the OnTrigger* hooks instead of
	// OnCollision*.
	Trigger bool
}

// Collider is an axis-aligned box attached to a GameObject.
//
// Each collider remembers which colliders of every other object it overlapped
// on the previous detection pass; diffing against that memory classifies
// overlaps into enter, stay and exit.
type Collider struct {
	offset    geom.Position
	dimension geom.Dimension
	resolved  bool
	visible   bool
	trigger   bool

	// owner is a back-reference only; the collider never manages its
	// owner's lifetime.
	owner GameObject

	overlaps map[GameObject][]*Collider
}

// NewBoxCollider creates an unattached collider. It is inert until added to
// an object with Object.AddCollider.
func NewBoxCollider(opts ColliderOptions) *Collider {
	c := &Collider{
		offset:  opts.Offset,
		visible: opts.Visible,
		trigger: opts.Trigger,
	}
	if opts.Dimension != nil {
		c.dimension = *opts.Dimension
		c.resolved = true
	}
	return c
}

func (c *Collider) Offset() geom.Position { return c.offset }

// Dimension returns the collider size and whether it has been resolved.
func (c *Collider) Dimension() (geom.Dimension, bool) { return c.dimension, c.resolved }

func (c *Collider) Visible() bool { return c.visible }

func (c *Collider) SetVisible(v bool) { c.visible = v }

func (c *Collider) Trigger() bool { return c.trigger }

// Owner returns the object the collider is attached to, or nil.
func (c *Collider) Owner() GameObject { return c.owner }

// Rect returns the collider's world-space box. ok is false while the
// collider is unattached or has no dimension.
func (c *Collider) Rect() (r geom.Rect, ok bool) {
	if c.owner == nil || !c.resolved {
		return geom.Rect{}, false
	}
	pos := c.owner.Base().position.Add(c.offset)
	return geom.NewRect(pos, c.dimension), true
}

// Overlapping returns the colliders of other that this collider overlapped
// on the most recent detection pass against other.
func (c *Collider) Overlapping(other GameObject) []*Collider {
	return slices.Clone(c.overlaps[other])
}

// Forget drops the overlap memory kept for other without firing callbacks.
func (c *Collider) Forget(other GameObject) {
	delete(c.overlaps, other)
}

// Reset drops all overlap memory without firing callbacks.
func (c *Collider) Reset() {
	c.overlaps = nil
}

// DetectCollision tests this collider against every collider of other and
// fires one hook on the owner per collider that entered, stayed or exited.
//
// Hooks receive other, not the individual collider, so an owner may see the
// same hook several times in one pass when several colliders of other
// transition together. Testing an object against itself does nothing.
// Pairings where either box has no area are skipped and counted in Stats.
func (c *Collider) DetectCollision(other GameObject) {
	if c.owner == nil || other == nil || other == c.owner {
		return
	}

	stats := c.owner.Base().stats()
	self, selfOK := c.Rect()

	var current []*Collider
	for _, oc := range other.Base().colliders {
		r, ok := oc.Rect()
		if !selfOK || !ok || self.Empty() || r.Empty() {
			stats.skippedPairing()
			continue
		}
		if geom.Overlaps(self, r) {
			current = append(current, oc)
		}
	}

	previous := c.overlaps[other]
	if len(current) == 0 {
		delete(c.overlaps, other)
	} else {
		if c.overlaps == nil {
			c.overlaps = make(map[GameObject][]*Collider)
		}
		c.overlaps[other] = current
	}

	for _, oc := range current {
		if !slices.Contains(previous, oc) {
			c.dispatch(Enter, other)
		}
	}
	for _, oc := range current {
		if slices.Contains(previous, oc) {
			c.dispatch(Stay, other)
		}
	}
	for _, oc := range previous {
		if !slices.Contains(current, oc) {
			c.dispatch(Exit, other)
		}
	}
}

func (c *Collider) dispatch(kind TransitionKind, other GameObject) {
	owner := c.owner
	owner.Base().stats().transition(c.trigger, kind)

	if c.trigger {
		switch kind {
		case Enter:
			owner.OnTriggerEnter(other)
		case Stay:
			owner.OnTriggerStay(other)
		case Exit:
			owner.OnTriggerExit(other)
		}
		return
	}

	switch kind {
	case Enter:
		owner.OnCollisionEnter(other)
	case Stay:
		owner.OnCollisionStay(other)
	case Exit:
		owner.OnCollisionExit(other)
	}
}

// Render outlines the collider when it is visible.
func (c *Collider) Render(surface Surface) {
	if !c.visible {
		return
	}
	if r, ok := c.Rect(); ok {
		surface.StrokeRect(r, colliderDebugColor)
	}
}
