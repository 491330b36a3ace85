package vulkan

import (
	m "math"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

type VulkanSwapchain struct {
	ImageFormat vk.SurfaceFormat
	PresentMode vk.PresentMode
	Extent      vk.Extent2D
	Handle      vk.Swapchain
	Images      []vk.Image
	Views       []vk.ImageView
}

type VulkanSwapchainSupportInfo struct {
	Capabilities vk.SurfaceCapabilities
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

// ChooseSurfaceFormat prefers 8-bit sRGB BGRA and falls back to whatever
// the surface lists first.
func ChooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, format := range formats {
		if format.Format == vk.FormatB8g8r8a8Srgb && format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return format
		}
	}
	return formats[0]
}

// ChoosePresentMode returns the requested mode when the surface supports
// it. FIFO is always available.
func ChoosePresentMode(requested metadata.PresentMode, available []vk.PresentMode) vk.PresentMode {
	want := vk.PresentModeFifo
	switch requested {
	case metadata.PRESENT_MODE_MAILBOX:
		want = vk.PresentModeMailbox
	case metadata.PRESENT_MODE_IMMEDIATE:
		want = vk.PresentModeImmediate
	}
	for _, mode := range available {
		if mode == want {
			return mode
		}
	}
	return vk.PresentModeFifo
}

// ChooseExtent uses the surface's current extent when it dictates one and
// otherwise clamps the requested size into the allowed range.
func ChooseExtent(capabilities vk.SurfaceCapabilities, width, height uint32) vk.Extent2D {
	if capabilities.CurrentExtent.Width != m.MaxUint32 {
		return capabilities.CurrentExtent
	}
	return vk.Extent2D{
		Width:  math.Clamp(width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: math.Clamp(height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

func textureFormat(format vk.Format) metadata.TextureFormat {
	switch format {
	case vk.FormatB8g8r8a8Unorm:
		return metadata.TEXTURE_FORMAT_BGRA8_UNORM
	case vk.FormatB8g8r8a8Srgb:
		return metadata.TEXTURE_FORMAT_BGRA8_SRGB
	case vk.FormatR8g8b8a8Unorm:
		return metadata.TEXTURE_FORMAT_RGBA8_UNORM
	case vk.FormatR8g8b8a8Srgb:
		return metadata.TEXTURE_FORMAT_RGBA8_SRGB
	}
	return metadata.TEXTURE_FORMAT_UNDEFINED
}

// SwapchainCreate builds a swapchain for the surface. The old swapchain,
// if any, is handed to the driver for reuse and must be destroyed by the
// caller afterwards.
func SwapchainCreate(context *VulkanContext, config metadata.SurfaceConfig, old *VulkanSwapchain) (*VulkanSwapchain, error) {
	support := &context.Device.SwapchainSupport
	if err := DeviceQuerySwapchainSupport(context.Device.PhysicalDevice, context.Surface, support); err != nil {
		return nil, err
	}

	swapchain := &VulkanSwapchain{
		ImageFormat: ChooseSurfaceFormat(support.Formats),
		PresentMode: ChoosePresentMode(config.PresentMode, support.PresentModes),
		Extent:      ChooseExtent(support.Capabilities, config.Width, config.Height),
	}

	imageCount := support.Capabilities.MinImageCount + 1
	if support.Capabilities.MaxImageCount > 0 && imageCount > support.Capabilities.MaxImageCount {
		imageCount = support.Capabilities.MaxImageCount
	}

	swapchainCreateInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          context.Surface,
		MinImageCount:    imageCount,
		ImageFormat:      swapchain.ImageFormat.Format,
		ImageColorSpace:  swapchain.ImageFormat.ColorSpace,
		ImageExtent:      swapchain.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     support.Capabilities.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      swapchain.PresentMode,
		Clipped:          vk.True,
	}
	if old != nil {
		swapchainCreateInfo.OldSwapchain = old.Handle
	}

	// Setup the queue family indices
	if context.Device.GraphicsQueueIndex != context.Device.PresentQueueIndex {
		swapchainCreateInfo.ImageSharingMode = vk.SharingModeConcurrent
		swapchainCreateInfo.QueueFamilyIndexCount = 2
		swapchainCreateInfo.PQueueFamilyIndices = []uint32{
			context.Device.GraphicsQueueIndex,
			context.Device.PresentQueueIndex,
		}
	}

	var handle vk.Swapchain
	if res := vk.CreateSwapchain(context.Device.LogicalDevice, &swapchainCreateInfo, context.Allocator, &handle); res != vk.Success {
		return nil, resultError("vkCreateSwapchainKHR", res)
	}
	swapchain.Handle = handle

	var count uint32
	if res := vk.GetSwapchainImages(context.Device.LogicalDevice, handle, &count, nil); res != vk.Success {
		return nil, resultError("vkGetSwapchainImagesKHR", res)
	}
	swapchain.Images = make([]vk.Image, count)
	if res := vk.GetSwapchainImages(context.Device.LogicalDevice, handle, &count, swapchain.Images); res != vk.Success {
		return nil, resultError("vkGetSwapchainImagesKHR", res)
	}

	swapchain.Views = make([]vk.ImageView, count)
	for i := range swapchain.Images {
		view, err := createImageView(context, swapchain.Images[i], swapchain.ImageFormat.Format)
		if err != nil {
			return nil, err
		}
		swapchain.Views[i] = view
	}

	core.LogWith(
		"width", swapchain.Extent.Width,
		"height", swapchain.Extent.Height,
		"images", count,
		"present", config.PresentMode,
	).Info("Swapchain created.")
	return swapchain, nil
}

// AcquireNextImageIndex waits for the next presentable image.
func (vs *VulkanSwapchain) AcquireNextImageIndex(context *VulkanContext, timeoutNS uint64, imageAvailable vk.Semaphore) (uint32, error) {
	var index uint32
	res := vk.AcquireNextImage(context.Device.LogicalDevice, vs.Handle, timeoutNS, imageAvailable, vk.NullFence, &index)
	if err := resultError("vkAcquireNextImageKHR", res); err != nil {
		return 0, err
	}
	return index, nil
}

// Present returns the image to the swapchain once renderComplete signals.
func (vs *VulkanSwapchain) Present(presentQueue vk.Queue, renderComplete vk.Semaphore, index uint32) error {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{renderComplete},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{vs.Handle},
		PImageIndices:      []uint32{index},
	}
	return resultError("vkQueuePresentKHR", vk.QueuePresent(presentQueue, &presentInfo))
}

// Destroy releases the views and the swapchain. The images belong to the
// swapchain and go with it. The device must be idle.
func (vs *VulkanSwapchain) Destroy(context *VulkanContext) {
	for _, view := range vs.Views {
		vk.DestroyImageView(context.Device.LogicalDevice, view, context.Allocator)
	}
	vs.Views = nil
	vs.Images = nil
	if vs.Handle != nil {
		vk.DestroySwapchain(context.Device.LogicalDevice, vs.Handle, context.Allocator)
		vs.Handle = nil
	}
}
