package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

type VulkanSurfaceImage struct {
	index uint32
}

func (i *VulkanSurfaceImage) Index() uint32 { return i.index }

/** @brief The finished command buffer of one frame. */
type VulkanCommandList struct {
	label  string
	buffer *VulkanCommandBuffer
	err    error
}

func (c *VulkanCommandList) Label() string { return c.label }

/**
 * @brief Records into the current frame's command buffer. Recording
 * errors are kept and reported when the list is submitted.
 */
type VulkanCommandRecorder struct {
	renderer *VulkanRenderer
	label    string
	buffer   *VulkanCommandBuffer
	err      error
}

func (r *VulkanCommandRecorder) fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *VulkanCommandRecorder) BeginRenderPass(desc *metadata.RenderPassDescriptor) metadata.RenderPass {
	encoder := &VulkanRenderPassEncoder{recorder: r}
	if r.err != nil {
		return encoder
	}
	target, ok := desc.ColorTarget.(*VulkanImage)
	if !ok || target.Handle == nil {
		r.fail(fmt.Errorf("render pass %s: invalid colour target: %w", desc.Label, core.ErrUnknown))
		return encoder
	}
	pass, err := r.renderer.renderpassFor(desc.LoadOperation, desc.StoreOperation)
	if err != nil {
		r.fail(err)
		return encoder
	}
	framebuffer, err := r.renderer.framebufferFor(pass, target, desc.ResolveTarget.Index())
	if err != nil {
		r.fail(err)
		return encoder
	}
	pass.Begin(r.buffer, framebuffer, desc.ClearColour)
	encoder.pass = pass
	return encoder
}

func (r *VulkanCommandRecorder) Finish() metadata.CommandBuffer {
	if r.err == nil {
		r.fail(r.buffer.End())
	}
	return &VulkanCommandList{label: r.label, buffer: r.buffer, err: r.err}
}

/**
 * @brief Translates draw state into vkCmd calls. Objects whose creation
 * failed have nil handles and are skipped; the failure itself was
 * already latched.
 */
type VulkanRenderPassEncoder struct {
	recorder *VulkanCommandRecorder
	pass     *VulkanRenderpass
	drawable bool
}

func (e *VulkanRenderPassEncoder) cmd() vk.CommandBuffer {
	return e.recorder.buffer.Handle
}

func (e *VulkanRenderPassEncoder) active() bool {
	return e.pass != nil && e.recorder.err == nil
}

func (e *VulkanRenderPassEncoder) SetPipeline(pipeline metadata.Pipeline) {
	if !e.active() {
		return
	}
	p, ok := pipeline.(*VulkanPipeline)
	e.drawable = ok && p.Handle != nil
	if e.drawable {
		p.Bind(e.recorder.renderer.context, e.recorder.buffer)
	}
}

func (e *VulkanRenderPassEncoder) SetBindingSet(slot uint32, set metadata.BindingSet) {
	if !e.active() {
		return
	}
	s, ok := set.(*VulkanBindingSet)
	if !ok || s.Handle == nil {
		e.drawable = false
		return
	}
	vk.CmdBindDescriptorSets(e.cmd(), vk.PipelineBindPointGraphics, e.recorder.renderer.context.PipelineLayout,
		slot, 1, []vk.DescriptorSet{s.Handle}, 0, nil)
}

func (e *VulkanRenderPassEncoder) SetVertexBuffer(buffer metadata.Buffer) {
	if !e.active() {
		return
	}
	b, ok := buffer.(*VulkanBuffer)
	if !ok || b.Handle == nil {
		e.drawable = false
		return
	}
	vk.CmdBindVertexBuffers(e.cmd(), 0, 1, []vk.Buffer{b.Handle}, []vk.DeviceSize{0})
}

func (e *VulkanRenderPassEncoder) SetIndexBuffer(buffer metadata.Buffer, format metadata.IndexFormat) {
	if !e.active() {
		return
	}
	b, ok := buffer.(*VulkanBuffer)
	if !ok || b.Handle == nil {
		e.drawable = false
		return
	}
	indexType := vk.IndexTypeUint32
	if format == metadata.INDEX_FORMAT_UINT16 {
		indexType = vk.IndexTypeUint16
	}
	vk.CmdBindIndexBuffer(e.cmd(), b.Handle, 0, indexType)
}

func (e *VulkanRenderPassEncoder) DrawIndexed(indexCount uint32) {
	if !e.active() || !e.drawable || indexCount == 0 {
		return
	}
	vk.CmdDrawIndexed(e.cmd(), indexCount, 1, 0, 0, 0)
}

func (e *VulkanRenderPassEncoder) End() {
	if e.pass == nil {
		return
	}
	e.pass.End(e.recorder.buffer)
	e.pass = nil
}
