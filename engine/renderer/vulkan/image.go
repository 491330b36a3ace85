package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/anima2d/engine/core"
)

/** @brief A device-local image with its memory and default view. */
type VulkanImage struct {
	Handle  vk.Image
	Memory  vk.DeviceMemory
	View    vk.ImageView
	width   uint32
	height  uint32
	samples uint32
}

func (i *VulkanImage) Width() uint32       { return i.width }
func (i *VulkanImage) Height() uint32      { return i.height }
func (i *VulkanImage) SampleCount() uint32 { return i.samples }

func sampleCountFlag(samples uint32) vk.SampleCountFlagBits {
	switch samples {
	case 2:
		return vk.SampleCount2Bit
	case 4:
		return vk.SampleCount4Bit
	case 8:
		return vk.SampleCount8Bit
	}
	return vk.SampleCount1Bit
}

// MultisampleImageCreate allocates a transient colour attachment that is
// only ever resolved, never stored.
func MultisampleImageCreate(context *VulkanContext, format vk.Format, width, height, samples uint32) (*VulkanImage, error) {
	out := &VulkanImage{width: width, height: height, samples: samples}
	device := context.Device.LogicalDevice

	imageCreateInfo := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Format:    format,
		Extent: vk.Extent3D{
			Width:  width,
			Height: height,
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   1,
		Samples:       sampleCountFlag(samples),
		Tiling:        vk.ImageTilingOptimal,
		Usage:         vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit | vk.ImageUsageTransientAttachmentBit),
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}

	var handle vk.Image
	if res := vk.CreateImage(device, &imageCreateInfo, context.Allocator, &handle); res != vk.Success {
		return nil, resultError("vkCreateImage", res)
	}
	out.Handle = handle

	var requirements vk.MemoryRequirements
	vk.GetImageMemoryRequirements(device, handle, &requirements)
	requirements.Deref()

	// Lazily allocated memory is ideal for transient targets but optional.
	memoryType := context.FindMemoryIndex(requirements.MemoryTypeBits,
		uint32(vk.MemoryPropertyDeviceLocalBit|vk.MemoryPropertyLazilyAllocatedBit))
	if memoryType < 0 {
		memoryType = context.FindMemoryIndex(requirements.MemoryTypeBits, uint32(vk.MemoryPropertyDeviceLocalBit))
	}
	if memoryType < 0 {
		out.Destroy(context)
		return nil, fmt.Errorf("no memory type for a %dx%d multisample target: %w", width, height, core.ErrOutOfMemory)
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: uint32(memoryType),
	}
	var memory vk.DeviceMemory
	if res := vk.AllocateMemory(device, &allocateInfo, context.Allocator, &memory); res != vk.Success {
		out.Destroy(context)
		return nil, resultError("vkAllocateMemory", res)
	}
	out.Memory = memory

	if res := vk.BindImageMemory(device, handle, memory, 0); res != vk.Success {
		out.Destroy(context)
		return nil, resultError("vkBindImageMemory", res)
	}

	view, err := createImageView(context, handle, format)
	if err != nil {
		out.Destroy(context)
		return nil, err
	}
	out.View = view
	return out, nil
}

func (i *VulkanImage) Destroy(context *VulkanContext) {
	device := context.Device.LogicalDevice
	if i.View != nil {
		vk.DestroyImageView(device, i.View, context.Allocator)
		i.View = nil
	}
	if i.Memory != nil {
		vk.FreeMemory(device, i.Memory, context.Allocator)
		i.Memory = nil
	}
	if i.Handle != nil {
		vk.DestroyImage(device, i.Handle, context.Allocator)
		i.Handle = nil
	}
}

func createImageView(context *VulkanContext, image vk.Image, format vk.Format) (vk.ImageView, error) {
	viewInfo := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}
	var view vk.ImageView
	if res := vk.CreateImageView(context.Device.LogicalDevice, &viewInfo, context.Allocator, &view); res != vk.Success {
		return nil, resultError("vkCreateImageView", res)
	}
	return view, nil
}
