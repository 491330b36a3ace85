package vulkan

/**
 * @brief Sets of per-frame sync objects and command buffers. Uniform
 * buffers are not duplicated per frame, so AcquireNextImage still waits
 * for every earlier submission before the scene may write.
 */
const VULKAN_MAX_FRAMES_IN_FLIGHT uint32 = 2

/**
 * @brief Binding sets the descriptor pool is sized for when the
 * configuration does not say otherwise.
 */
const VULKAN_DEFAULT_MAX_BINDING_SETS uint32 = 1024

/** @brief Smallest buffer allocated. Zero-sized buffers are legal for the scene but not for Vulkan. */
const VULKAN_MIN_BUFFER_SIZE uint64 = 4

/** @brief Destroy requests that can wait on one frame's fence. */
const VULKAN_MAX_PENDING_DESTROYS int = 4096

/** @brief Both binding set slots hold a single uniform buffer at binding 0. */
const VULKAN_BINDING_SET_SLOTS uint32 = 2
