package physics

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/scene"
)

const (
	// GravitationalConstant is scaled for normalized device coordinates.
	GravitationalConstant float32 = 1e-7
	// CircleSides is the vertex count of a body outline.
	CircleSides uint16 = 20
)

// Body is a point mass drawn as a circle. It refers to its entity through
// a handle and does not own it.
type Body struct {
	Mass         uint32
	Radius       float32
	Handle       scene.Handle
	Position     math.Vec2
	Velocity     math.Vec2
	Acceleration math.Vec2
}

// Spawn adds a circle entity of the given radius to the registry, centred
// on position, and returns the body tracking it.
func Spawn(reg *scene.Registry, mass uint32, radius float32, position, velocity, acceleration math.Vec2) *Body {
	entity, handle := reg.Add()

	outline := math.GenerateRegularGeometry(CircleSides, radius, math.NewVec2Zero(), 0)
	entity.SetGeometry(outline, math.TriangulateRing(outline))
	entity.TranslateTo(position)

	return &Body{
		Mass:         mass,
		Radius:       radius,
		Handle:       handle,
		Position:     position,
		Velocity:     velocity,
		Acceleration: acceleration,
	}
}

// ApplyGravity accumulates, for every body, the pull of every other body:
// a_i += -(d/|d|) * G*m_j/|d|^2 with d = p_i - p_j. Coincident bodies
// produce non-finite accelerations.
func ApplyGravity(bodies []*Body) {
	for i, body := range bodies {
		for j, other := range bodies {
			if i == j {
				continue
			}
			diff := body.Position.Sub(other.Position)
			distSq := diff.LengthSquared()
			dist := math32.Sqrt(distSq)
			magnitude := GravitationalConstant * float32(other.Mass) / distSq
			body.Acceleration = body.Acceleration.Add(diff.DivScalar(dist).MulScalar(-magnitude))
		}
	}
}

// Integrate advances every body one explicit Euler step and moves its
// entity by the new velocity. Handles invalidated by removals are
// re-resolved; bodies whose entity is gone are skipped and reported.
func Integrate(bodies []*Body, reg *scene.Registry) error {
	var errs []error
	for _, body := range bodies {
		body.Velocity = body.Velocity.Add(body.Acceleration)
		body.Position = body.Position.Add(body.Velocity)
		body.Acceleration = math.NewVec2Zero()

		entity, err := body.entity(reg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entity.TranslateBy(body.Velocity)
	}
	return errors.Join(errs...)
}

func (b *Body) entity(reg *scene.Registry) (*scene.Entity, error) {
	e, err := reg.Lookup(b.Handle)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, core.ErrStaleHandle) {
		return nil, err
	}
	h, err := reg.Resolve(b.Handle)
	if err != nil {
		return nil, fmt.Errorf("body of mass %d: %w", b.Mass, err)
	}
	b.Handle = h
	return reg.Lookup(h)
}
