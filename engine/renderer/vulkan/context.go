package vulkan

import (
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/anima2d/engine/containers"
	"github.com/spaghettifunk/anima2d/engine/core"
)

type VulkanContext struct {
	Instance  vk.Instance
	Allocator *vk.AllocationCallbacks
	Surface   vk.Surface

	debugMessenger vk.DebugReportCallback

	Device *VulkanDevice

	Swapchain      *VulkanSwapchain
	MainRenderpass *VulkanRenderpass

	// One set layout per binding set slot, plus the layout every pipeline shares.
	SetLayouts     [VULKAN_BINDING_SET_SLOTS]vk.DescriptorSetLayout
	PipelineLayout vk.PipelineLayout
	DescriptorPool vk.DescriptorPool

	Frames       []*VulkanFrame
	CurrentFrame uint32

	locks *VulkanLockPool
}

/**
 * @brief Everything one frame in flight owns: the command buffer it
 * records into, its sync objects and the objects whose destruction
 * waits for its fence.
 */
type VulkanFrame struct {
	CommandBuffer   *VulkanCommandBuffer
	ImageAvailable  vk.Semaphore
	RenderComplete  vk.Semaphore
	InFlight        *VulkanFence
	PendingDestroys *containers.RingQueue[func()]
}

func (vc *VulkanContext) frame() *VulkanFrame {
	return vc.Frames[vc.CurrentFrame]
}

func (vc *VulkanContext) FindMemoryIndex(typeFilter, propertyFlags uint32) int32 {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(vc.Device.PhysicalDevice, &memoryProperties)
	memoryProperties.Deref()

	for i := uint32(0); i < memoryProperties.MemoryTypeCount; i++ {
		// Check each memory type to see if its bit is set to 1.
		memoryProperties.MemoryTypes[i].Deref()
		if (typeFilter&(1<<i)) != 0 && (uint32(memoryProperties.MemoryTypes[i].PropertyFlags)&propertyFlags) == propertyFlags {
			return int32(i)
		}
	}
	core.LogWarn("Unable to find suitable memory type!")
	return -1
}
