package vulkan

import (
	"errors"
	"fmt"
	m "math"
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/anima2d/engine/containers"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/platform"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

// vulkanObject is anything the backend allocates on behalf of the scene.
type vulkanObject interface {
	Destroy(context *VulkanContext)
}

type passKey struct {
	load  metadata.LoadOperation
	store metadata.StoreOperation
}

/**
 * @brief The Vulkan implementation of metadata.RendererBackend.
 *
 * Objects released by the scene are not destroyed right away: they are
 * queued on the current frame and destroyed once that frame's fence has
 * signalled, so a frame in flight never loses a buffer it reads.
 */
type VulkanRenderer struct {
	platform *platform.Platform
	config   metadata.RendererBackendConfig
	context  *VulkanContext

	FrameNumber uint64

	surface      metadata.SurfaceConfig
	passes       map[passKey]*VulkanRenderpass
	framebuffers map[framebufferKey]*VulkanFramebuffer
	live         map[vulkanObject]struct{}

	latched        error
	imageIndex     uint32
	pendingPresent bool
	// set by Submit, cleared once every frame's fence has been waited on
	gpuBusy bool
}

func New(p *platform.Platform, config metadata.RendererBackendConfig) *VulkanRenderer {
	if config.MaxBindingSets == 0 {
		config.MaxBindingSets = VULKAN_DEFAULT_MAX_BINDING_SETS
	}
	return &VulkanRenderer{
		platform: p,
		config:   config,
		context: &VulkanContext{
			Allocator: nil,
			Device:    &VulkanDevice{},
			locks:     NewVulkanLockPool(),
		},
		passes:       make(map[passKey]*VulkanRenderpass),
		framebuffers: make(map[framebufferKey]*VulkanFramebuffer),
		live:         make(map[vulkanObject]struct{}),
	}
}

// Initialize brings up the instance, surface, device and an initial
// swapchain sized to the window's framebuffer.
func (vr *VulkanRenderer) Initialize() error {
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return fmt.Errorf("GetInstanceProcAddress is nil: %w", core.ErrNoAdapter)
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		return fmt.Errorf("failed to initialize vk: %w", err)
	}

	if err := vr.createInstance(); err != nil {
		return err
	}

	if vr.config.Validation {
		if err := vr.createDebugCallback(); err != nil {
			// Validation output is a convenience, rendering works without it.
			core.LogWarn("Vulkan debugger unavailable: %s", err)
		}
	}

	core.LogDebug("Creating Vulkan surface...")
	surface, err := vr.platform.Window.CreateWindowSurface(vr.context.Instance, nil)
	if err != nil {
		return fmt.Errorf("vulkan surface creation failed: %w", err)
	}
	vr.context.Surface = vk.SurfaceFromPointer(surface)
	core.LogDebug("Vulkan surface created.")

	if err := DeviceCreate(vr.context); err != nil {
		return err
	}

	if err := DescriptorLayoutsCreate(vr.context, vr.config.MaxBindingSets); err != nil {
		return err
	}

	width, height := vr.platform.FramebufferSize()
	vr.surface = metadata.SurfaceConfig{
		Width:       max(width, 1),
		Height:      max(height, 1),
		PresentMode: vr.config.PresentMode,
	}
	sc, err := SwapchainCreate(vr.context, vr.surface, nil)
	if err != nil {
		return err
	}
	vr.context.Swapchain = sc
	vr.surface.Format = textureFormat(sc.ImageFormat.Format)

	rp, err := vr.renderpassFor(metadata.LOAD_OPERATION_CLEAR, metadata.STORE_OPERATION_STORE)
	if err != nil {
		return err
	}
	vr.context.MainRenderpass = rp

	if err := vr.createFrames(); err != nil {
		return err
	}

	core.LogWith("samples", vr.config.SampleCount, "validation", vr.config.Validation).Info("Vulkan renderer initialized successfully.")
	return nil
}

func (vr *VulkanRenderer) createInstance() error {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 1, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(vr.config.ApplicationName),
		PEngineName:        VulkanSafeString("Anima2D"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	// Obtain a list of required extensions
	requiredExtensions := vr.platform.GetRequiredExtensionNames()
	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
		// VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR
		createInfo.Flags |= 1
	}

	var layers []string
	if vr.config.Validation {
		requiredExtensions = append(requiredExtensions, vk.ExtDebugReportExtensionName)
		if hasInstanceLayer("VK_LAYER_KHRONOS_validation") {
			layers = append(layers, "VK_LAYER_KHRONOS_validation")
			core.LogInfo("Validation layers enabled.")
		} else {
			core.LogWarn("Validation requested but VK_LAYER_KHRONOS_validation is not installed.")
		}
	}
	for _, ext := range requiredExtensions {
		core.LogDebug("Required extension: %s", cString([]byte(ext)))
	}

	createInfo.EnabledExtensionCount = uint32(len(requiredExtensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(requiredExtensions)
	createInfo.EnabledLayerCount = uint32(len(layers))
	createInfo.PpEnabledLayerNames = VulkanSafeStrings(layers)

	var instance vk.Instance
	if res := vk.CreateInstance(&createInfo, vr.context.Allocator, &instance); res != vk.Success {
		return resultError("vkCreateInstance", res)
	}
	vr.context.Instance = instance
	if err := vk.InitInstance(instance); err != nil {
		return err
	}
	core.LogInfo("Vulkan Instance created.")
	return nil
}

func hasInstanceLayer(name string) bool {
	var count uint32
	if res := vk.EnumerateInstanceLayerProperties(&count, nil); res != vk.Success {
		return false
	}
	layers := make([]vk.LayerProperties, count)
	if res := vk.EnumerateInstanceLayerProperties(&count, layers); res != vk.Success {
		return false
	}
	for i := range layers {
		layers[i].Deref()
		if cString(layers[i].LayerName[:]) == name {
			return true
		}
	}
	return false
}

func (vr *VulkanRenderer) createDebugCallback() error {
	core.LogDebug("Creating Vulkan debugger...")
	debugCreateInfo := vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit),
		PfnCallback: dbgCallbackFunc,
	}
	var dbg vk.DebugReportCallback
	if err := vk.Error(vk.CreateDebugReportCallback(vr.context.Instance, &debugCreateInfo, nil, &dbg)); err != nil {
		return err
	}
	vr.context.debugMessenger = dbg
	core.LogDebug("Vulkan debugger created.")
	return nil
}

func (vr *VulkanRenderer) createFrames() error {
	ctx := vr.context
	ctx.Frames = make([]*VulkanFrame, VULKAN_MAX_FRAMES_IN_FLIGHT)
	for i := range ctx.Frames {
		cb, err := NewVulkanCommandBuffer(ctx, ctx.Device.GraphicsCommandPool, true)
		if err != nil {
			return err
		}
		semaphoreCreateInfo := vk.SemaphoreCreateInfo{
			SType: vk.StructureTypeSemaphoreCreateInfo,
		}
		var available, complete vk.Semaphore
		if res := vk.CreateSemaphore(ctx.Device.LogicalDevice, &semaphoreCreateInfo, ctx.Allocator, &available); res != vk.Success {
			return resultError("vkCreateSemaphore", res)
		}
		if res := vk.CreateSemaphore(ctx.Device.LogicalDevice, &semaphoreCreateInfo, ctx.Allocator, &complete); res != vk.Success {
			return resultError("vkCreateSemaphore", res)
		}
		// Signaled, so the first wait on each frame returns at once.
		fence, err := NewFence(ctx, true)
		if err != nil {
			return err
		}
		ctx.Frames[i] = &VulkanFrame{
			CommandBuffer:   cb,
			ImageAvailable:  available,
			RenderComplete:  complete,
			InFlight:        fence,
			PendingDestroys: containers.NewRingQueue[func()](VULKAN_MAX_PENDING_DESTROYS),
		}
	}
	ctx.CurrentFrame = 0
	core.LogDebug("Created %d frames in flight.", len(ctx.Frames))
	return nil
}

// Latch records the first device error; it is reported by the next
// AcquireNextImage or Submit.
func (vr *VulkanRenderer) Latch(err error) {
	if err == nil {
		return
	}
	core.LogError("vulkan: %s", err)
	if vr.latched == nil {
		vr.latched = err
	}
}

func (vr *VulkanRenderer) takeLatched() error {
	err := vr.latched
	vr.latched = nil
	return err
}

// release queues fn until the current frame's fence signals. If the queue
// is full the device is drained and fn runs immediately.
func (vr *VulkanRenderer) release(obj vulkanObject) {
	if _, ok := vr.live[obj]; !ok {
		return
	}
	delete(vr.live, obj)
	destroy := func() { obj.Destroy(vr.context) }
	if err := vr.context.frame().PendingDestroys.Enqueue(destroy); errors.Is(err, containers.ErrQueueFull) {
		vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)
		for _, f := range vr.context.Frames {
			f.PendingDestroys.Drain(func(fn func()) { fn() })
		}
		destroy()
	}
}

func (vr *VulkanRenderer) track(obj vulkanObject) {
	vr.live[obj] = struct{}{}
}

func (vr *VulkanRenderer) PreferredFormat() metadata.TextureFormat {
	return vr.surface.Format
}

// ConfigureSurface recreates the swapchain. Framebuffers built on the old
// images are dropped and rebuilt on demand.
func (vr *VulkanRenderer) ConfigureSurface(config metadata.SurfaceConfig) {
	if config.Width == 0 || config.Height == 0 {
		vr.Latch(fmt.Errorf("configure surface %dx%d: %w", config.Width, config.Height, core.ErrUnknown))
		return
	}
	ctx := vr.context
	if res := vk.DeviceWaitIdle(ctx.Device.LogicalDevice); res != vk.Success {
		vr.Latch(resultError("vkDeviceWaitIdle", res))
		return
	}
	if vr.pendingPresent {
		// Hand back the image submitted last frame before the swapchain goes.
		if err := vr.Present(&VulkanSurfaceImage{index: vr.imageIndex}); err != nil {
			core.LogDebug("present before reconfigure: %s", err)
		}
		vk.DeviceWaitIdle(ctx.Device.LogicalDevice)
	}
	vr.destroyFramebuffers(nil)

	old := ctx.Swapchain
	sc, err := SwapchainCreate(ctx, config, old)
	if err != nil {
		vr.Latch(err)
		return
	}
	if old != nil {
		old.Destroy(ctx)
	}
	ctx.Swapchain = sc

	format := textureFormat(sc.ImageFormat.Format)
	if config.Format != metadata.TEXTURE_FORMAT_UNDEFINED && config.Format != format {
		core.LogWarn("Surface format %d requested, swapchain uses %d.", config.Format, format)
	}
	config.Format = format
	vr.surface = config
}

func (vr *VulkanRenderer) CreateBuffer(label string, usage metadata.BufferUsage, size uint64) metadata.Buffer {
	buf, err := BufferCreate(vr.context, label, usage, size)
	if err != nil {
		vr.Latch(err)
		return &VulkanBuffer{label: label, usage: usage, size: size}
	}
	vr.track(buf)
	return buf
}

func (vr *VulkanRenderer) WriteBuffer(buffer metadata.Buffer, offset uint64, data []byte) {
	buf, ok := buffer.(*VulkanBuffer)
	if !ok {
		vr.Latch(fmt.Errorf("write to foreign buffer %s: %w", buffer.Label(), core.ErrUnknown))
		return
	}
	// Uniform buffers are single-copy and persistently mapped.
	if err := vr.waitFrames(); err != nil {
		vr.Latch(err)
		return
	}
	vr.Latch(buf.Write(offset, data))
}

func (vr *VulkanRenderer) DestroyBuffer(buffer metadata.Buffer) {
	if buf, ok := buffer.(*VulkanBuffer); ok {
		vr.release(buf)
	}
}

func (vr *VulkanRenderer) CreateBindingSet(label string, slot uint32, buffer metadata.Buffer) metadata.BindingSet {
	buf, ok := buffer.(*VulkanBuffer)
	if !ok || buf.Handle == nil {
		vr.Latch(fmt.Errorf("binding set %s: buffer is not usable: %w", label, core.ErrUnknown))
		return &VulkanBindingSet{label: label, slot: slot}
	}
	set, err := BindingSetCreate(vr.context, label, slot, buf)
	if err != nil {
		vr.Latch(err)
		return &VulkanBindingSet{label: label, slot: slot}
	}
	vr.track(set)
	return set
}

func (vr *VulkanRenderer) DestroyBindingSet(set metadata.BindingSet) {
	if s, ok := set.(*VulkanBindingSet); ok {
		vr.release(s)
	}
}

func (vr *VulkanRenderer) CreatePipeline(shader *metadata.ShaderSource) metadata.Pipeline {
	failed := &VulkanPipeline{name: shader.Name}
	if err := shader.Validate(); err != nil {
		vr.Latch(fmt.Errorf("%s: %w", err, core.ErrUnknown))
		return failed
	}

	vertex, err := NewShaderModule(vr.context, metadata.SHADER_STAGE_VERTEX, shader.Vertex)
	if err != nil {
		vr.Latch(err)
		return failed
	}
	defer vertex.Destroy(vr.context)
	fragment, err := NewShaderModule(vr.context, metadata.SHADER_STAGE_FRAGMENT, shader.Fragment)
	if err != nil {
		vr.Latch(err)
		return failed
	}
	defer fragment.Destroy(vr.context)

	config := DefaultPipelineConfig(shader.Name, vr.context.MainRenderpass, []vk.PipelineShaderStageCreateInfo{
		vertex.ShaderStageCreateInfo,
		fragment.ShaderStageCreateInfo,
	})
	pipeline, err := NewGraphicsPipeline(vr.context, config)
	if err != nil {
		vr.Latch(err)
		return failed
	}
	vr.track(pipeline)
	return pipeline
}

func (vr *VulkanRenderer) DestroyPipeline(pipeline metadata.Pipeline) {
	if p, ok := pipeline.(*VulkanPipeline); ok {
		vr.release(p)
	}
}

func (vr *VulkanRenderer) CreateMultisampleTarget(width, height, samples uint32) metadata.Texture {
	if samples != vr.config.SampleCount {
		core.LogWarn("Multisample target wants %d samples, pipelines are built for %d.", samples, vr.config.SampleCount)
	}
	// Framebuffers take the swapchain extent, which the surface may have
	// clamped away from the size asked for.
	if sc := vr.context.Swapchain; sc != nil && (sc.Extent.Width != width || sc.Extent.Height != height) {
		core.LogDebug("Multisample target %dx%d sized to swapchain extent %dx%d.", width, height, sc.Extent.Width, sc.Extent.Height)
		width, height = sc.Extent.Width, sc.Extent.Height
	}
	image, err := MultisampleImageCreate(vr.context, vr.context.Swapchain.ImageFormat.Format, width, height, samples)
	if err != nil {
		vr.Latch(err)
		return &VulkanImage{width: width, height: height, samples: samples}
	}
	vr.track(image)
	return image
}

func (vr *VulkanRenderer) DestroyTexture(texture metadata.Texture) {
	image, ok := texture.(*VulkanImage)
	if !ok {
		return
	}
	vr.destroyFramebuffers(image)
	vr.release(image)
}

// destroyFramebuffers drops cached framebuffers built on target, or all of
// them when target is nil.
func (vr *VulkanRenderer) destroyFramebuffers(target *VulkanImage) {
	for key, fb := range vr.framebuffers {
		if target != nil && key.target != target {
			continue
		}
		delete(vr.framebuffers, key)
		if target == nil {
			// Callers of the nil form have already waited for the device.
			fb.Destroy(vr.context)
			continue
		}
		vr.live[fb] = struct{}{}
		vr.release(fb)
	}
}

func (vr *VulkanRenderer) renderpassFor(load metadata.LoadOperation, store metadata.StoreOperation) (*VulkanRenderpass, error) {
	key := passKey{load: load, store: store}
	if rp, ok := vr.passes[key]; ok {
		return rp, nil
	}
	// Passes differing only in load/store ops are compatible, so every
	// pipeline built against the main pass works with all of them.
	rp, err := RenderpassCreate(vr.context, vr.context.Swapchain.ImageFormat.Format, vr.config.SampleCount, load, store)
	if err != nil {
		return nil, err
	}
	vr.passes[key] = rp
	return rp, nil
}

func (vr *VulkanRenderer) framebufferFor(pass *VulkanRenderpass, target *VulkanImage, image uint32) (*VulkanFramebuffer, error) {
	key := framebufferKey{target: target, image: image}
	if fb, ok := vr.framebuffers[key]; ok {
		return fb, nil
	}
	sc := vr.context.Swapchain
	if int(image) >= len(sc.Views) {
		return nil, fmt.Errorf("surface image %d out of range: %w", image, core.ErrSurfaceOutdated)
	}
	fb, err := FramebufferCreate(vr.context, pass, sc.Extent.Width, sc.Extent.Height, []vk.ImageView{target.View, sc.Views[image]})
	if err != nil {
		return nil, err
	}
	vr.framebuffers[key] = fb
	return fb, nil
}

// waitFrames blocks until no submission can still be reading buffer
// memory. Pending destroys are left alone, the frame being recorded may
// reference them.
func (vr *VulkanRenderer) waitFrames() error {
	if !vr.gpuBusy {
		return nil
	}
	for _, frame := range vr.context.Frames {
		if err := frame.InFlight.Wait(vr.context, m.MaxUint64); err != nil {
			return err
		}
	}
	vr.gpuBusy = false
	return nil
}

// AcquireNextImage waits for every earlier submission, runs the destroys
// queued behind the current frame and acquires a swapchain image. Buffer
// writes made between here and Submit never race the GPU.
func (vr *VulkanRenderer) AcquireNextImage() (metadata.SurfaceImage, error) {
	if err := vr.takeLatched(); err != nil {
		return nil, err
	}
	if vr.pendingPresent {
		// Submitted last frame but never presented.
		if err := vr.Present(&VulkanSurfaceImage{index: vr.imageIndex}); err != nil {
			return nil, err
		}
	}

	if err := vr.waitFrames(); err != nil {
		return nil, err
	}
	frame := vr.context.frame()
	frame.PendingDestroys.Drain(func(fn func()) { fn() })

	index, err := vr.context.Swapchain.AcquireNextImageIndex(vr.context, m.MaxUint64, frame.ImageAvailable)
	if err != nil {
		return nil, err
	}
	vr.imageIndex = index
	return &VulkanSurfaceImage{index: index}, nil
}

func (vr *VulkanRenderer) CreateCommandRecorder(label string) metadata.CommandRecorder {
	cb := vr.context.frame().CommandBuffer
	recorder := &VulkanCommandRecorder{renderer: vr, label: label, buffer: cb}
	recorder.fail(cb.Reset())
	if recorder.err == nil {
		recorder.fail(cb.Begin(true, false, false))
	}
	return recorder
}

func (vr *VulkanRenderer) Submit(commands metadata.CommandBuffer) error {
	list, ok := commands.(*VulkanCommandList)
	if !ok {
		return fmt.Errorf("submit of foreign command buffer %s: %w", commands.Label(), core.ErrUnknown)
	}

	frame := vr.context.frame()
	if err := frame.InFlight.Reset(vr.context); err != nil {
		return err
	}

	// A list that failed to record is replaced by an empty batch, which
	// still consumes the acquire semaphore and signals the fence.
	var buffers []vk.CommandBuffer
	if list.err == nil {
		buffers = []vk.CommandBuffer{list.buffer.Handle}
	}
	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{frame.ImageAvailable},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
		CommandBufferCount:   uint32(len(buffers)),
		PCommandBuffers:      buffers,
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{frame.RenderComplete},
	}
	err := vr.context.locks.SafeCall(QueueManagement, func() error {
		return resultError("vkQueueSubmit", vk.QueueSubmit(vr.context.Device.GraphicsQueue, 1, []vk.SubmitInfo{submitInfo}, frame.InFlight.Handle))
	})
	if err != nil {
		return err
	}
	list.buffer.UpdateSubmitted()
	vr.pendingPresent = true
	vr.gpuBusy = true

	if list.err != nil {
		return errors.Join(list.err, vr.takeLatched())
	}
	// Errors raised while the frame was recorded surface here, after the
	// work is queued so the semaphores stay balanced.
	return vr.takeLatched()
}

func (vr *VulkanRenderer) Present(image metadata.SurfaceImage) error {
	frame := vr.context.frame()
	vr.pendingPresent = false
	err := vr.context.locks.SafeCall(QueueManagement, func() error {
		return vr.context.Swapchain.Present(vr.context.Device.PresentQueue, frame.RenderComplete, image.Index())
	})
	vr.context.CurrentFrame = (vr.context.CurrentFrame + 1) % uint32(len(vr.context.Frames))
	vr.FrameNumber++
	return err
}

func (vr *VulkanRenderer) Shutdown() error {
	ctx := vr.context
	if ctx.Device.LogicalDevice == nil {
		vr.destroyInstance()
		return nil
	}
	var errs []error
	if res := vk.DeviceWaitIdle(ctx.Device.LogicalDevice); res != vk.Success {
		errs = append(errs, resultError("vkDeviceWaitIdle", res))
	}

	// Destroy in the opposite order of creation.
	for _, frame := range ctx.Frames {
		frame.PendingDestroys.Drain(func(fn func()) { fn() })
	}
	if len(vr.live) > 0 {
		core.LogDebug("Releasing %d objects still owned by the scene.", len(vr.live))
	}
	vr.destroyFramebuffers(nil)
	for obj := range vr.live {
		obj.Destroy(ctx)
	}
	clear(vr.live)

	for _, frame := range ctx.Frames {
		vk.DestroySemaphore(ctx.Device.LogicalDevice, frame.ImageAvailable, ctx.Allocator)
		vk.DestroySemaphore(ctx.Device.LogicalDevice, frame.RenderComplete, ctx.Allocator)
		frame.InFlight.Destroy(ctx)
		frame.CommandBuffer.Free(ctx, ctx.Device.GraphicsCommandPool)
	}
	ctx.Frames = nil

	for key, rp := range vr.passes {
		rp.Destroy(ctx)
		delete(vr.passes, key)
	}
	ctx.MainRenderpass = nil

	if ctx.Swapchain != nil {
		ctx.Swapchain.Destroy(ctx)
		ctx.Swapchain = nil
	}

	DescriptorLayoutsDestroy(ctx)

	core.LogDebug("Destroying Vulkan device...")
	DeviceDestroy(ctx)

	vr.destroyInstance()
	return errors.Join(errs...)
}

// destroyInstance releases the surface, the debug callback and the instance.
func (vr *VulkanRenderer) destroyInstance() {
	ctx := vr.context
	if ctx.Instance == nil {
		return
	}
	core.LogDebug("Destroying Vulkan surface...")
	if ctx.Surface != vk.NullSurface {
		vk.DestroySurface(ctx.Instance, ctx.Surface, ctx.Allocator)
		ctx.Surface = vk.NullSurface
	}

	if ctx.debugMessenger != vk.NullDebugReportCallback {
		core.LogDebug("Destroying Vulkan debugger...")
		vk.DestroyDebugReportCallback(ctx.Instance, ctx.debugMessenger, ctx.Allocator)
		ctx.debugMessenger = vk.NullDebugReportCallback
	}

	core.LogDebug("Destroying Vulkan instance...")
	vk.DestroyInstance(ctx.Instance, ctx.Allocator)
	ctx.Instance = nil
}

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	l := core.LogWith("layer", pLayerPrefix, "code", messageCode)
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		l.Error(pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		l.Warn(pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		l.Warn(pMessage, "performance", true)
	default:
		l.Debug(pMessage)
	}
	return vk.Bool32(vk.False)
}

var _ metadata.RendererBackend = (*VulkanRenderer)(nil)
