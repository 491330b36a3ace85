package testbed

import (
	"path/filepath"

	"github.com/spaghettifunk/anima2d/engine"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/physics"
	"github.com/spaghettifunk/anima2d/engine/scene"
)

const (
	colorShaderName = "color"
	// MarkerGeometry is drawn from the asset directory when present and
	// reloaded whenever the file changes.
	MarkerGeometry = "marker.geo"

	shearPerFrame float32 = 0.02
)

// CircleColor is the fragment parameter block of the colour shader,
// padded to a std140 vec4.
type CircleColor struct {
	Color [3]float32
	_     float32
}

var (
	defaultCircleColor = [3]float32{0.0, 0.5, 0.5}
	resentCircleColor  = [3]float32{0.6, 0.4, 0.1}
)

// DefaultBodies is the three body system used when the configuration
// does not list any: two light bodies orbiting a heavy one.
var DefaultBodies = []core.BodyConfig{
	{Mass: 10, Radius: 0.05, Position: [2]float32{-0.5, 0}, Velocity: [2]float32{0, -0.02}, Color: defaultCircleColor[:]},
	{Mass: 2000, Radius: 0.1},
	{Mass: 10, Radius: 0.05, Position: [2]float32{0.5, 0}, Velocity: [2]float32{0, 0.02}, Color: defaultCircleColor[:]},
}

type TestGame struct {
	*engine.Game
}

type gameState struct {
	simulation *physics.Simulation
	bodies     []core.BodyConfig
	// The built-in system re-sends the third body's colour in place.
	defaults  bool
	resources *engine.Resources
	registry  *scene.Registry

	polygon scene.Handle
	marker  scene.Handle
	hasMark bool

	keyListener   uint64
	assetListener uint64
}

func NewTestGame(cfg *core.Config) *TestGame {
	bodies := cfg.Simulation.Bodies
	defaults := len(bodies) == 0
	if defaults {
		bodies = DefaultBodies
	}

	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: engine.NewApplicationConfig(cfg),
			State: &gameState{
				simulation: physics.NewSimulation(),
				bodies:     bodies,
				defaults:   defaults,
			},
		},
	}

	tg.FnBoot = tg.Boot
	tg.FnShutdown = tg.Shutdown
	tg.Hook = tg.state().simulation

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Boot(registry *scene.Registry, resources *engine.Resources) error {
	core.LogInfo("booting testbed...")
	state := g.state()
	state.registry = registry
	state.resources = resources

	if err := g.spawnBodies(); err != nil {
		return err
	}
	g.spawnPolygon()
	g.spawnMarker()

	state.keyListener = core.EventRegister(core.EVENT_CODE_KEY_PRESSED, g.gameOnKey)
	state.assetListener = core.EventRegister(core.EVENT_CODE_ASSET_CHANGED, g.gameOnAsset)
	return nil
}

func (g *TestGame) spawnBodies() error {
	state := g.state()

	colorShader, err := state.resources.LoadShader(colorShaderName)
	if err != nil {
		core.LogWarn("colour shader unavailable, bodies keep the default pipeline: %s", err)
	}

	for i, b := range state.bodies {
		body := state.simulation.Spawn(state.registry, b.Mass, b.Radius,
			math.NewVec2(b.Position[0], b.Position[1]),
			math.NewVec2(b.Velocity[0], b.Velocity[1]))
		if b.Color == nil || colorShader == nil {
			continue
		}

		entity, err := state.registry.Lookup(body.Handle)
		if err != nil {
			return err
		}
		entity.SetPipeline(colorShader)
		params := CircleColor{}
		copy(params.Color[:], b.Color)
		if err := entity.SetShaderParameters(params); err != nil {
			return err
		}

		if state.defaults && i == 2 {
			if err := entity.SendShaderParameters(CircleColor{Color: resentCircleColor}); err != nil {
				return err
			}
		}
	}
	return nil
}

// spawnPolygon adds a 16-gon that shears a little more every frame.
func (g *TestGame) spawnPolygon() {
	state := g.state()
	entity, handle := state.registry.Add()
	outline := math.GenerateRegularGeometry(16, 0.1, math.NewVec2Zero(), 0)
	entity.SetGeometry(outline, math.TriangulateRing(outline))
	entity.TranslateTo(math.NewVec2(-0.7, 0.7))
	entity.SetBehavior(scene.BehaviorFunc(func(e *scene.Entity) {
		e.ShearBy(math.NewVec2(shearPerFrame, 0))
	}))
	state.polygon = handle
}

func (g *TestGame) spawnMarker() {
	state := g.state()
	data, err := state.resources.LoadGeometry(MarkerGeometry)
	if err != nil {
		core.LogDebug("no marker geometry: %s", err)
		return
	}
	entity, handle := state.registry.Add()
	entity.SetGeometry(data.Vertices, data.Indices)
	entity.TranslateTo(math.NewVec2(0.7, -0.7))
	state.marker = handle
	state.hasMark = true
}

func (g *TestGame) Shutdown() error {
	state := g.state()
	core.EventUnregister(core.EVENT_CODE_KEY_PRESSED, state.keyListener)
	core.EventUnregister(core.EVENT_CODE_ASSET_CHANGED, state.assetListener)
	core.LogInfo("testbed ran %d simulation steps", state.simulation.Steps())
	return nil
}

func (g *TestGame) gameOnKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		return false
	}
	switch ke.KeyCode {
	case core.KEY_SPACE:
		g.state().simulation.TogglePause()
		return true
	case core.KEY_R:
		g.resetPolygon()
		return true
	}
	return false
}

func (g *TestGame) resetPolygon() {
	state := g.state()
	entity, err := state.registry.Lookup(state.polygon)
	if err != nil {
		core.LogWarn("reset polygon: %s", err)
		return
	}
	entity.ShearTo(math.NewVec2Zero())
}

func (g *TestGame) gameOnAsset(context core.EventContext) bool {
	ae, ok := context.Data.(*core.AssetEvent)
	if !ok || filepath.Base(ae.Path) != MarkerGeometry {
		return false
	}
	state := g.state()
	data, err := state.resources.LoadGeometry(MarkerGeometry)
	if err != nil {
		core.LogWarn("marker reload skipped: %s", err)
		return true
	}
	if !state.hasMark {
		g.spawnMarker()
		return true
	}
	entity, err := state.registry.Lookup(state.marker)
	if err != nil {
		core.LogWarn("marker reload: %s", err)
		return true
	}
	entity.SetGeometry(data.Vertices, data.Indices)
	core.LogInfo("marker geometry reloaded (%d vertices)", len(data.Vertices))
	return true
}
