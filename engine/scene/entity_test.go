package scene

import (
	"encoding/binary"
	m "math"
	"testing"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer/headless"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type circleColor struct {
	RGB [3]float32
	_   float32
}

func newTestEntity(t *testing.T) (*Entity, *headless.Backend) {
	t.Helper()
	backend := headless.New()
	reg := NewRegistry(backend)
	e, _ := reg.Add()
	return e, backend
}

func matrixOf(t *testing.T, buf metadata.Buffer) math.Mat4 {
	t.Helper()
	data := buf.(*headless.Buffer).Data
	require.Len(t, data, math.Mat4Size)
	out := math.Mat4{}
	for i := range out.Data {
		out.Data[i] = m.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}

func TestNewEntityDefaults(t *testing.T) {
	e, backend := newTestEntity(t)

	assert.Equal(t, math.NewVec2Zero(), e.Position())
	assert.Equal(t, float32(0), e.Angle())
	assert.Equal(t, math.NewVec2One(), e.Scale())
	assert.Zero(t, e.IndexCount())
	assert.Equal(t, uint64(4), e.ParameterSize())
	assert.Nil(t, e.Pipeline())
	assert.Equal(t, math.NewMat4Identity(), matrixOf(t, e.transformBuffer))

	// vertex, index, transform, parameters
	assert.Equal(t, 4, backend.LiveBuffers())
	assert.Equal(t, 2, backend.LiveBindingSets())
	assert.Equal(t, uint32(0), e.BindingSet(0).Slot())
	assert.Equal(t, uint32(1), e.BindingSet(1).Slot())
}

func TestEntityTransformWritesWholeMatrix(t *testing.T) {
	e, backend := newTestEntity(t)
	before := len(backend.Writes)

	e.TranslateTo(math.NewVec2(0.25, -0.5))
	e.RotateBy(0.5)
	e.ScaleBy(math.NewVec2(2, 2))
	e.ShearBy(math.NewVec2(0.1, 0))

	writes := backend.Writes[before:]
	require.Len(t, writes, 4)
	for _, w := range writes {
		assert.Same(t, e.transformBuffer, w.Buffer)
		assert.Equal(t, uint64(0), w.Offset)
		assert.Equal(t, math.Mat4Size, w.Size)
	}
	assert.Equal(t, e.Transform().Matrix(), matrixOf(t, e.transformBuffer))
	assert.InDelta(t, 0.5, e.Angle(), 1e-6)
	assert.Equal(t, math.NewVec2(0.1, 0), e.Shear())
}

func TestEntityTranslateBy(t *testing.T) {
	e, _ := newTestEntity(t)
	e.TranslateTo(math.NewVec2(1, 1))
	e.TranslateBy(math.NewVec2(0.5, -2))

	assert.Equal(t, math.NewVec2(1.5, -1), e.Position())
	got := matrixOf(t, e.transformBuffer)
	assert.Equal(t, float32(1.5), got.Data[12])
	assert.Equal(t, float32(-1), got.Data[13])
}

func TestEntitySetGeometry(t *testing.T) {
	e, backend := newTestEntity(t)
	oldVertex, oldIndex := e.VertexBuffer(), e.IndexBuffer()

	points := math.GenerateRegularGeometry(4, 1, math.NewVec2Zero(), 0)
	indices := math.TriangulateRing(points)
	e.SetGeometry(points, indices)

	assert.True(t, oldVertex.(*headless.Buffer).Destroyed)
	assert.True(t, oldIndex.(*headless.Buffer).Destroyed)
	assert.Equal(t, uint32(6), e.IndexCount())
	assert.Equal(t, uint64(4*8), e.VertexBuffer().Size())
	assert.Equal(t, uint64(6*4), e.IndexBuffer().Size())

	idx := e.IndexBuffer().(*headless.Buffer).Data
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(idx[0:]))

	vtx := e.VertexBuffer().(*headless.Buffer).Data
	assert.InDelta(t, 1.0, m.Float32frombits(binary.LittleEndian.Uint32(vtx[4:])), 1e-6)
	assert.Equal(t, 4, backend.LiveBuffers())
}

func TestEntitySetGeometryEmpty(t *testing.T) {
	e, _ := newTestEntity(t)
	e.SetGeometry(nil, nil)
	assert.Zero(t, e.IndexCount())
	assert.Zero(t, e.VertexBuffer().Size())
}

func TestEntityShaderParameters(t *testing.T) {
	e, backend := newTestEntity(t)
	oldSet := e.BindingSet(1)

	require.NoError(t, e.SetShaderParameters(circleColor{RGB: [3]float32{0, 0.5, 0.5}}))
	assert.Equal(t, uint64(16), e.ParameterSize())
	assert.True(t, oldSet.(*headless.BindingSet).Destroyed)
	assert.NotSame(t, oldSet, e.BindingSet(1))
	assert.Same(t, e.paramsBuffer, e.BindingSet(1).(*headless.BindingSet).Buffer)

	require.NoError(t, e.SendShaderParameters(circleColor{RGB: [3]float32{0.6, 0.4, 0.1}}))
	data := e.paramsBuffer.(*headless.Buffer).Data
	assert.InDelta(t, 0.6, m.Float32frombits(binary.LittleEndian.Uint32(data[0:])), 1e-7)
	assert.InDelta(t, 0.1, m.Float32frombits(binary.LittleEndian.Uint32(data[8:])), 1e-7)

	assert.Equal(t, 4, backend.LiveBuffers())
	assert.Equal(t, 2, backend.LiveBindingSets())
}

func TestEntitySendShaderParametersSizeMismatch(t *testing.T) {
	e, _ := newTestEntity(t)
	require.NoError(t, e.SetShaderParameters(circleColor{}))

	err := e.SendShaderParameters([3]float32{1, 1, 1})
	assert.ErrorIs(t, err, core.ErrParameterSizeMismatch)

	err = e.SendShaderParameters(float32(1))
	assert.ErrorIs(t, err, core.ErrParameterSizeMismatch)
}

func TestEntityShaderParametersRejectVariableSize(t *testing.T) {
	e, backend := newTestEntity(t)
	assert.ErrorIs(t, e.SetShaderParameters([]float32{1, 2}), core.ErrInvalidParameters)
	assert.ErrorIs(t, e.SetShaderParameters(nil), core.ErrInvalidParameters)
	assert.Equal(t, uint64(4), e.ParameterSize())

	writes := len(backend.Writes)
	assert.ErrorIs(t, e.SendShaderParameters([]byte{1, 2, 3, 4}), core.ErrInvalidParameters)
	assert.ErrorIs(t, e.SendShaderParameters(&[]float32{1}), core.ErrInvalidParameters)
	assert.Len(t, backend.Writes, writes)
}

func TestEntitySetPipelineReplaces(t *testing.T) {
	e, backend := newTestEntity(t)

	e.SetPipeline(&metadata.ShaderSource{Name: "color"})
	first := e.Pipeline()
	e.SetPipeline(&metadata.ShaderSource{Name: "other"})

	assert.True(t, first.(*headless.Pipeline).Destroyed)
	assert.Equal(t, "other", e.Pipeline().Name())
	assert.Equal(t, 1, backend.LivePipelines())

	e.ClearPipeline()
	assert.Nil(t, e.Pipeline())
	assert.Zero(t, backend.LivePipelines())
}

func TestEntityDestroyReleasesEverything(t *testing.T) {
	e, backend := newTestEntity(t)
	e.SetPipeline(&metadata.ShaderSource{Name: "color"})
	e.SetGeometry([]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, []uint32{0, 1, 2})

	e.Destroy()

	assert.Zero(t, backend.LiveBuffers())
	assert.Zero(t, backend.LiveBindingSets())
	assert.Zero(t, backend.LivePipelines())
}
