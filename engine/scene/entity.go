package scene

import (
	"bytes"
	"encoding/binary"
	"fmt"
	m "math"
	"reflect"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

// Behavior is run once per frame for the entity it is attached to, before
// anything is drawn.
type Behavior interface {
	Update(e *Entity)
}

// BehaviorFunc adapts a plain function to a Behavior.
type BehaviorFunc func(e *Entity)

func (f BehaviorFunc) Update(e *Entity) {
	f(e)
}

// defaultParameters is what a fresh entity exposes at set 1: a single zero float.
var defaultParameters = [1]float32{0}

/**
 * @brief A drawable object living on the GPU. The entity owns its vertex,
 * index, transform and parameter buffers plus the two binding sets built
 * on top of the last two. The transform buffer always mirrors the cached
 * Transform2D.
 */
type Entity struct {
	backend    metadata.RendererBackend
	label      core.Identifier
	generation uint64

	vertexBuffer    metadata.Buffer
	indexBuffer     metadata.Buffer
	transformBuffer metadata.Buffer
	paramsBuffer    metadata.Buffer

	transformSet metadata.BindingSet
	paramsSet    metadata.BindingSet

	// nil means the frame renderer's default pipeline
	pipeline metadata.Pipeline
	behavior Behavior

	transform  math.Transform2D
	indexCount uint32
	paramsSize uint64
}

func newEntity(backend metadata.RendererBackend, generation uint64) *Entity {
	e := &Entity{
		backend:    backend,
		label:      core.NewIdentifier("entity"),
		generation: generation,
		transform:  math.NewTransform2D(),
	}

	e.vertexBuffer = backend.CreateBuffer(e.label.Sub("vertex"), metadata.BUFFER_USAGE_VERTEX|metadata.BUFFER_USAGE_COPY_DST, 0)
	e.indexBuffer = backend.CreateBuffer(e.label.Sub("index"), metadata.BUFFER_USAGE_INDEX|metadata.BUFFER_USAGE_COPY_DST, 0)

	e.transformBuffer = backend.CreateBuffer(e.label.Sub("transform"), metadata.BUFFER_USAGE_UNIFORM|metadata.BUFFER_USAGE_COPY_DST, math.Mat4Size)
	e.writeTransform()
	e.transformSet = backend.CreateBindingSet(e.label.Sub("transform-set"), metadata.TransformSetSlot, e.transformBuffer)

	// cannot fail, the default blob is fixed-size
	_ = e.SetShaderParameters(defaultParameters)
	return e
}

// SetGeometry replaces both geometry buffers. Indices are not checked
// against the vertex count.
func (e *Entity) SetGeometry(vertices []math.Vec2, indices []uint32) {
	e.backend.DestroyBuffer(e.vertexBuffer)
	e.backend.DestroyBuffer(e.indexBuffer)

	vertexData := make([]byte, 0, len(vertices)*int(metadata.VertexStride))
	for _, v := range vertices {
		vertexData = binary.LittleEndian.AppendUint32(vertexData, m.Float32bits(v.X))
		vertexData = binary.LittleEndian.AppendUint32(vertexData, m.Float32bits(v.Y))
	}
	indexData := make([]byte, 0, len(indices)*int(metadata.IndexSize))
	for _, i := range indices {
		indexData = binary.LittleEndian.AppendUint32(indexData, i)
	}

	e.vertexBuffer = e.backend.CreateBuffer(e.label.Sub("vertex"), metadata.BUFFER_USAGE_VERTEX|metadata.BUFFER_USAGE_COPY_DST, uint64(len(vertexData)))
	e.indexBuffer = e.backend.CreateBuffer(e.label.Sub("index"), metadata.BUFFER_USAGE_INDEX|metadata.BUFFER_USAGE_COPY_DST, uint64(len(indexData)))
	if len(vertexData) > 0 {
		e.backend.WriteBuffer(e.vertexBuffer, 0, vertexData)
	}
	if len(indexData) > 0 {
		e.backend.WriteBuffer(e.indexBuffer, 0, indexData)
	}
	e.indexCount = uint32(len(indices))
}

// SetShaderParameters reallocates the parameter buffer to fit data, uploads
// it and rebuilds binding set 1. data must be a fixed-size value as
// understood by encoding/binary; it is encoded little-endian with no
// implicit padding, so std140 alignment is the caller's job.
func (e *Entity) SetShaderParameters(data any) error {
	raw, err := encodeParameters(data)
	if err != nil {
		return err
	}

	if e.paramsSet != nil {
		e.backend.DestroyBindingSet(e.paramsSet)
	}
	if e.paramsBuffer != nil {
		e.backend.DestroyBuffer(e.paramsBuffer)
	}

	e.paramsBuffer = e.backend.CreateBuffer(e.label.Sub("parameters"), metadata.BUFFER_USAGE_UNIFORM|metadata.BUFFER_USAGE_COPY_DST, uint64(len(raw)))
	e.backend.WriteBuffer(e.paramsBuffer, 0, raw)
	e.paramsSet = e.backend.CreateBindingSet(e.label.Sub("parameters-set"), metadata.ParameterSetSlot, e.paramsBuffer)
	e.paramsSize = uint64(len(raw))
	return nil
}

// SendShaderParameters overwrites the existing parameter buffer in place.
// The encoded size has to match the one committed by the last
// SetShaderParameters.
func (e *Entity) SendShaderParameters(data any) error {
	raw, err := encodeParameters(data)
	if err != nil {
		return err
	}
	if uint64(len(raw)) != e.paramsSize {
		return fmt.Errorf("%w: got %d bytes, buffer holds %d", core.ErrParameterSizeMismatch, len(raw), e.paramsSize)
	}
	e.backend.WriteBuffer(e.paramsBuffer, 0, raw)
	return nil
}

// SetPipeline gives the entity its own pipeline built from shader,
// replacing any previous one.
func (e *Entity) SetPipeline(shader *metadata.ShaderSource) {
	if e.pipeline != nil {
		e.backend.DestroyPipeline(e.pipeline)
	}
	e.pipeline = e.backend.CreatePipeline(shader)
}

// ClearPipeline falls back to the default pipeline.
func (e *Entity) ClearPipeline() {
	if e.pipeline != nil {
		e.backend.DestroyPipeline(e.pipeline)
		e.pipeline = nil
	}
}

func (e *Entity) SetBehavior(b Behavior) {
	e.behavior = b
}

// transforms

func (e *Entity) TranslateTo(position math.Vec2) {
	e.transform.TranslateTo(position)
	e.writeTransform()
}

func (e *Entity) TranslateBy(delta math.Vec2) {
	e.transform.TranslateBy(delta)
	e.writeTransform()
}

func (e *Entity) RotateTo(angle float32) {
	e.transform.RotateTo(angle)
	e.writeTransform()
}

func (e *Entity) RotateBy(delta float32) {
	e.transform.RotateBy(delta)
	e.writeTransform()
}

func (e *Entity) ScaleTo(scale math.Vec2) {
	e.transform.ScaleTo(scale)
	e.writeTransform()
}

func (e *Entity) ScaleBy(factor math.Vec2) {
	e.transform.ScaleBy(factor)
	e.writeTransform()
}

func (e *Entity) ShearTo(shear math.Vec2) {
	e.transform.ShearTo(shear)
	e.writeTransform()
}

func (e *Entity) ShearBy(delta math.Vec2) {
	e.transform.ShearBy(delta)
	e.writeTransform()
}

// SetTransform replaces the whole transform.
func (e *Entity) SetTransform(t math.Transform2D) {
	e.transform = t
	e.writeTransform()
}

func (e *Entity) writeTransform() {
	e.backend.WriteBuffer(e.transformBuffer, 0, e.transform.Matrix().Bytes())
}

// accessors

func (e *Entity) Transform() math.Transform2D   { return e.transform }
func (e *Entity) Position() math.Vec2           { return e.transform.Position() }
func (e *Entity) Angle() float32                { return e.transform.Angle() }
func (e *Entity) Scale() math.Vec2              { return e.transform.Scale() }
func (e *Entity) Shear() math.Vec2              { return e.transform.Shear() }
func (e *Entity) IndexCount() uint32            { return e.indexCount }
func (e *Entity) ParameterSize() uint64         { return e.paramsSize }
func (e *Entity) Label() string                 { return e.label.String() }
func (e *Entity) Generation() uint64            { return e.generation }
func (e *Entity) Pipeline() metadata.Pipeline   { return e.pipeline }
func (e *Entity) VertexBuffer() metadata.Buffer { return e.vertexBuffer }
func (e *Entity) IndexBuffer() metadata.Buffer  { return e.indexBuffer }

// BindingSet returns the set bound at slot 0 (transform) or 1 (parameters).
func (e *Entity) BindingSet(slot uint32) metadata.BindingSet {
	if slot == metadata.TransformSetSlot {
		return e.transformSet
	}
	return e.paramsSet
}

// Destroy releases every GPU object the entity owns. The entity must not
// be used afterwards.
func (e *Entity) Destroy() {
	if e.pipeline != nil {
		e.backend.DestroyPipeline(e.pipeline)
		e.pipeline = nil
	}
	e.backend.DestroyBindingSet(e.transformSet)
	e.backend.DestroyBindingSet(e.paramsSet)
	e.backend.DestroyBuffer(e.transformBuffer)
	e.backend.DestroyBuffer(e.paramsBuffer)
	e.backend.DestroyBuffer(e.vertexBuffer)
	e.backend.DestroyBuffer(e.indexBuffer)
	e.transformSet, e.paramsSet = nil, nil
	e.transformBuffer, e.paramsBuffer, e.vertexBuffer, e.indexBuffer = nil, nil, nil, nil
	e.behavior = nil
}

func encodeParameters(data any) ([]byte, error) {
	// binary.Size measures a slice by its length, not its type
	if data == nil || reflect.Indirect(reflect.ValueOf(data)).Kind() == reflect.Slice || binary.Size(data) <= 0 {
		return nil, fmt.Errorf("%w: %T", core.ErrInvalidParameters, data)
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidParameters, err)
	}
	return buf.Bytes(), nil
}
