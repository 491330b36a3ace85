package physics

import (
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/scene"
)

// Simulation steps a set of bodies once per rendered frame.
type Simulation struct {
	bodies []*Body
	paused bool
	steps  uint64
}

func NewSimulation() *Simulation {
	return &Simulation{}
}

// Spawn creates a body and adds it to the simulation.
func (s *Simulation) Spawn(reg *scene.Registry, mass uint32, radius float32, position, velocity math.Vec2) *Body {
	body := Spawn(reg, mass, radius, position, velocity, math.NewVec2Zero())
	s.bodies = append(s.bodies, body)
	return body
}

func (s *Simulation) Bodies() []*Body {
	return s.bodies
}

func (s *Simulation) Steps() uint64 {
	return s.steps
}

func (s *Simulation) SetPaused(paused bool) {
	s.paused = paused
}

func (s *Simulation) TogglePause() {
	s.paused = !s.paused
	core.LogInfo("simulation paused: %t", s.paused)
}

func (s *Simulation) Paused() bool {
	return s.paused
}

// OnFrame applies gravity and integrates one step.
func (s *Simulation) OnFrame(reg *scene.Registry) {
	if s.paused {
		return
	}
	ApplyGravity(s.bodies)
	if err := Integrate(s.bodies, reg); err != nil {
		core.LogWarn("integrate: %s", err)
	}
	s.steps++
}
