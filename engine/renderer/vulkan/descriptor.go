package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/anima2d/engine/core"
)

/**
 * @brief A descriptor set exposing one uniform buffer at binding 0 of
 * its slot.
 */
type VulkanBindingSet struct {
	Handle vk.DescriptorSet
	Buffer *VulkanBuffer

	label string
	slot  uint32
}

func (s *VulkanBindingSet) Label() string { return s.label }
func (s *VulkanBindingSet) Slot() uint32  { return s.slot }

// DescriptorLayoutsCreate builds one set layout per slot, the pipeline
// layout that combines them and a pool sized for maxSets live sets.
func DescriptorLayoutsCreate(context *VulkanContext, maxSets uint32) error {
	device := context.Device.LogicalDevice

	for slot := range context.SetLayouts {
		layoutInfo := vk.DescriptorSetLayoutCreateInfo{
			SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
			BindingCount: 1,
			PBindings: []vk.DescriptorSetLayoutBinding{{
				Binding:         0,
				DescriptorType:  vk.DescriptorTypeUniformBuffer,
				DescriptorCount: 1,
				StageFlags:      vk.ShaderStageFlags(vk.ShaderStageVertexBit | vk.ShaderStageFragmentBit),
			}},
		}
		var layout vk.DescriptorSetLayout
		if res := vk.CreateDescriptorSetLayout(device, &layoutInfo, context.Allocator, &layout); res != vk.Success {
			return resultError(fmt.Sprintf("vkCreateDescriptorSetLayout slot %d", slot), res)
		}
		context.SetLayouts[slot] = layout
	}

	pipelineLayoutCreateInfo := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: uint32(len(context.SetLayouts)),
		PSetLayouts:    context.SetLayouts[:],
	}
	err := context.locks.SafeCall(PipelineManagement, func() error {
		var layout vk.PipelineLayout
		if res := vk.CreatePipelineLayout(device, &pipelineLayoutCreateInfo, context.Allocator, &layout); res != vk.Success {
			return resultError("vkCreatePipelineLayout", res)
		}
		context.PipelineLayout = layout
		return nil
	})
	if err != nil {
		return err
	}

	poolInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:         vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit),
		MaxSets:       maxSets,
		PoolSizeCount: 1,
		PPoolSizes: []vk.DescriptorPoolSize{{
			Type:            vk.DescriptorTypeUniformBuffer,
			DescriptorCount: maxSets,
		}},
	}
	var pool vk.DescriptorPool
	if res := vk.CreateDescriptorPool(device, &poolInfo, context.Allocator, &pool); res != vk.Success {
		return resultError("vkCreateDescriptorPool", res)
	}
	context.DescriptorPool = pool
	core.LogDebug("Descriptor pool created for %d binding sets.", maxSets)
	return nil
}

func DescriptorLayoutsDestroy(context *VulkanContext) {
	device := context.Device.LogicalDevice
	if context.DescriptorPool != nil {
		vk.DestroyDescriptorPool(device, context.DescriptorPool, context.Allocator)
		context.DescriptorPool = nil
	}
	if context.PipelineLayout != nil {
		vk.DestroyPipelineLayout(device, context.PipelineLayout, context.Allocator)
		context.PipelineLayout = nil
	}
	for slot := range context.SetLayouts {
		if context.SetLayouts[slot] != nil {
			vk.DestroyDescriptorSetLayout(device, context.SetLayouts[slot], context.Allocator)
			context.SetLayouts[slot] = nil
		}
	}
}

// BindingSetCreate allocates a set for the slot and points binding 0 at
// the whole buffer.
func BindingSetCreate(context *VulkanContext, label string, slot uint32, buffer *VulkanBuffer) (*VulkanBindingSet, error) {
	if slot >= VULKAN_BINDING_SET_SLOTS {
		return nil, fmt.Errorf("binding set %s: slot %d out of range: %w", label, slot, core.ErrUnknown)
	}
	out := &VulkanBindingSet{label: label, slot: slot, Buffer: buffer}

	err := context.locks.SafeCall(DescriptorManagement, func() error {
		allocateInfo := vk.DescriptorSetAllocateInfo{
			SType:              vk.StructureTypeDescriptorSetAllocateInfo,
			DescriptorPool:     context.DescriptorPool,
			DescriptorSetCount: 1,
			PSetLayouts:        []vk.DescriptorSetLayout{context.SetLayouts[slot]},
		}
		var set vk.DescriptorSet
		if res := vk.AllocateDescriptorSets(context.Device.LogicalDevice, &allocateInfo, &set); res != vk.Success {
			return resultError("vkAllocateDescriptorSets "+label, res)
		}
		out.Handle = set

		write := vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          set,
			DstBinding:      0,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			PBufferInfo: []vk.DescriptorBufferInfo{{
				Buffer: buffer.Handle,
				Offset: 0,
				Range:  vk.DeviceSize(buffer.allocated),
			}},
		}
		vk.UpdateDescriptorSets(context.Device.LogicalDevice, 1, []vk.WriteDescriptorSet{write}, 0, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *VulkanBindingSet) Destroy(context *VulkanContext) {
	if s.Handle == nil {
		return
	}
	context.locks.SafeCall(DescriptorManagement, func() error {
		vk.FreeDescriptorSets(context.Device.LogicalDevice, context.DescriptorPool, 1, []vk.DescriptorSet{s.Handle})
		return nil
	})
	s.Handle = nil
}
