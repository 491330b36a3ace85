package vulkan

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

/**
 * @brief A host-visible, coherent buffer that stays mapped for its whole
 * life, so writes are plain copies.
 */
type VulkanBuffer struct {
	Handle vk.Buffer
	Memory vk.DeviceMemory

	label     string
	usage     metadata.BufferUsage
	size      uint64
	allocated uint64
	mapped    unsafe.Pointer
}

func (b *VulkanBuffer) Label() string               { return b.label }
func (b *VulkanBuffer) Size() uint64                { return b.size }
func (b *VulkanBuffer) Usage() metadata.BufferUsage { return b.usage }

func bufferUsageFlags(usage metadata.BufferUsage) vk.BufferUsageFlags {
	var flags vk.BufferUsageFlagBits
	if usage.Has(metadata.BUFFER_USAGE_VERTEX) {
		flags |= vk.BufferUsageVertexBufferBit
	}
	if usage.Has(metadata.BUFFER_USAGE_INDEX) {
		flags |= vk.BufferUsageIndexBufferBit
	}
	if usage.Has(metadata.BUFFER_USAGE_UNIFORM) {
		flags |= vk.BufferUsageUniformBufferBit
	}
	if usage.Has(metadata.BUFFER_USAGE_COPY_DST) {
		flags |= vk.BufferUsageTransferDstBit
	}
	return vk.BufferUsageFlags(flags)
}

// BufferCreate allocates and maps a buffer. Sizes below the minimum are
// rounded up; Size still reports what was asked for.
func BufferCreate(context *VulkanContext, label string, usage metadata.BufferUsage, size uint64) (*VulkanBuffer, error) {
	out := &VulkanBuffer{
		label:     label,
		usage:     usage,
		size:      size,
		allocated: metadata.GetAligned(max(size, VULKAN_MIN_BUFFER_SIZE), VULKAN_MIN_BUFFER_SIZE),
	}
	device := context.Device.LogicalDevice

	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(out.allocated),
		Usage:       bufferUsageFlags(usage),
		SharingMode: vk.SharingModeExclusive,
	}
	var handle vk.Buffer
	if res := vk.CreateBuffer(device, &bufferCreateInfo, context.Allocator, &handle); res != vk.Success {
		return nil, resultError("vkCreateBuffer "+label, res)
	}
	out.Handle = handle

	var requirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(device, handle, &requirements)
	requirements.Deref()

	memoryType := context.FindMemoryIndex(requirements.MemoryTypeBits,
		uint32(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if memoryType < 0 {
		out.Destroy(context)
		return nil, fmt.Errorf("no host-visible memory for %s: %w", label, core.ErrOutOfMemory)
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: uint32(memoryType),
	}
	var memory vk.DeviceMemory
	if res := vk.AllocateMemory(device, &allocateInfo, context.Allocator, &memory); res != vk.Success {
		out.Destroy(context)
		return nil, resultError("vkAllocateMemory "+label, res)
	}
	out.Memory = memory

	if res := vk.BindBufferMemory(device, handle, memory, 0); res != vk.Success {
		out.Destroy(context)
		return nil, resultError("vkBindBufferMemory "+label, res)
	}

	var mapped unsafe.Pointer
	if res := vk.MapMemory(device, memory, 0, vk.DeviceSize(out.allocated), 0, &mapped); res != vk.Success {
		out.Destroy(context)
		return nil, resultError("vkMapMemory "+label, res)
	}
	out.mapped = mapped
	return out, nil
}

// Write copies data at offset. The memory is coherent so no flush is needed.
func (b *VulkanBuffer) Write(offset uint64, data []byte) error {
	if b.mapped == nil {
		return fmt.Errorf("write to unmapped buffer %s: %w", b.label, core.ErrUnknown)
	}
	if offset+uint64(len(data)) > b.size {
		return fmt.Errorf("write of %d bytes at %d overflows %s (%d bytes): %w", len(data), offset, b.label, b.size, core.ErrUnknown)
	}
	dst := unsafe.Slice((*byte)(b.mapped), b.allocated)
	copy(dst[offset:], data)
	return nil
}

func (b *VulkanBuffer) Destroy(context *VulkanContext) {
	device := context.Device.LogicalDevice
	if b.mapped != nil {
		vk.UnmapMemory(device, b.Memory)
		b.mapped = nil
	}
	if b.Memory != nil {
		vk.FreeMemory(device, b.Memory, context.Allocator)
		b.Memory = nil
	}
	if b.Handle != nil {
		vk.DestroyBuffer(device, b.Handle, context.Allocator)
		b.Handle = nil
	}
}
