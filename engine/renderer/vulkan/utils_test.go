package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
)

func TestResultErrorClasses(t *testing.T) {
	assert.NoError(t, resultError("op", vk.Success))
	assert.NoError(t, resultError("op", vk.Suboptimal))

	assert.ErrorIs(t, resultError("op", vk.ErrorOutOfDate), core.ErrSurfaceOutdated)
	assert.ErrorIs(t, resultError("op", vk.ErrorOutOfHostMemory), core.ErrOutOfMemory)
	assert.ErrorIs(t, resultError("op", vk.ErrorOutOfDeviceMemory), core.ErrOutOfMemory)
	assert.ErrorIs(t, resultError("op", vk.ErrorDeviceLost), core.ErrDeviceLost)
	assert.ErrorIs(t, resultError("op", vk.ErrorFormatNotSupported), core.ErrUnknown)

	lost := resultError("vkAcquireNextImageKHR", vk.ErrorSurfaceLost)
	assert.True(t, core.IsFatalDeviceError(lost))
	assert.False(t, core.IsTransientSurfaceError(lost))

	err := resultError("vkQueueSubmit", vk.ErrorDeviceLost)
	assert.Contains(t, err.Error(), "vkQueueSubmit")
	assert.Contains(t, err.Error(), "VK_ERROR_DEVICE_LOST")
}

func TestChoosePresentMode(t *testing.T) {
	all := []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox, vk.PresentModeImmediate}
	assert.Equal(t, vk.PresentModeMailbox, ChoosePresentMode(metadata.PRESENT_MODE_MAILBOX, all))
	assert.Equal(t, vk.PresentModeImmediate, ChoosePresentMode(metadata.PRESENT_MODE_IMMEDIATE, all))

	fifoOnly := []vk.PresentMode{vk.PresentModeFifo}
	assert.Equal(t, vk.PresentModeFifo, ChoosePresentMode(metadata.PRESENT_MODE_MAILBOX, fifoOnly))
}

func TestChooseSurfaceFormat(t *testing.T) {
	unorm := vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	srgb := vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}

	assert.Equal(t, srgb, ChooseSurfaceFormat([]vk.SurfaceFormat{unorm, srgb}))
	assert.Equal(t, unorm, ChooseSurfaceFormat([]vk.SurfaceFormat{unorm}))
	assert.Equal(t, metadata.TEXTURE_FORMAT_BGRA8_SRGB, textureFormat(srgb.Format))
}

func TestChooseExtent(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: 0xFFFFFFFF, Height: 0xFFFFFFFF},
		MinImageExtent: vk.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: vk.Extent2D{Width: 1024, Height: 768},
	}
	assert.Equal(t, vk.Extent2D{Width: 1024, Height: 500}, ChooseExtent(caps, 2000, 500))

	caps.CurrentExtent = vk.Extent2D{Width: 640, Height: 480}
	assert.Equal(t, vk.Extent2D{Width: 640, Height: 480}, ChooseExtent(caps, 2000, 500))
}

func TestFlagTranslation(t *testing.T) {
	flags := bufferUsageFlags(metadata.BUFFER_USAGE_UNIFORM | metadata.BUFFER_USAGE_COPY_DST)
	assert.NotZero(t, flags&vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit))
	assert.NotZero(t, flags&vk.BufferUsageFlags(vk.BufferUsageTransferDstBit))
	assert.Zero(t, flags&vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit))

	assert.Equal(t, vk.SampleCount4Bit, sampleCountFlag(4))
	assert.Equal(t, vk.SampleCount1Bit, sampleCountFlag(3))
}

func TestSafeStrings(t *testing.T) {
	assert.Equal(t, "abc\x00", VulkanSafeString("abc"))
	assert.Equal(t, "abc\x00", VulkanSafeString("abc\x00"))
	assert.Equal(t, "layer", cString([]byte{'l', 'a', 'y', 'e', 'r', 0, 'x'}))
}
