package metadata

import "fmt"

type RendererBackendConfig struct {
	/** @brief The name of the application */
	ApplicationName string
	/** @brief MSAA sample count every pipeline is built for. */
	SampleCount uint32
	/** @brief Requested presentation mode. */
	PresentMode PresentMode
	/** @brief Enables the validation layers and debug messenger. */
	Validation bool
	/** @brief Upper bound of live binding sets. */
	MaxBindingSets uint32
}

type BufferUsage uint32

const (
	/** @brief Buffer is used for vertex data. */
	BUFFER_USAGE_VERTEX BufferUsage = 1 << iota
	/** @brief Buffer is used for index data. */
	BUFFER_USAGE_INDEX
	/** @brief Buffer is used for uniform data. */
	BUFFER_USAGE_UNIFORM
	/** @brief Buffer can be the destination of writes. */
	BUFFER_USAGE_COPY_DST
)

func (u BufferUsage) Has(flag BufferUsage) bool {
	return u&flag == flag
}

type IndexFormat int

const (
	INDEX_FORMAT_UINT16 IndexFormat = iota
	INDEX_FORMAT_UINT32
)

type TextureFormat int

const (
	TEXTURE_FORMAT_UNDEFINED TextureFormat = iota
	TEXTURE_FORMAT_BGRA8_UNORM
	TEXTURE_FORMAT_BGRA8_SRGB
	TEXTURE_FORMAT_RGBA8_UNORM
	TEXTURE_FORMAT_RGBA8_SRGB
)

type PresentMode int

const (
	PRESENT_MODE_FIFO PresentMode = iota
	PRESENT_MODE_MAILBOX
	PRESENT_MODE_IMMEDIATE
)

func ParsePresentMode(name string) (PresentMode, error) {
	switch name {
	case "fifo":
		return PRESENT_MODE_FIFO, nil
	case "mailbox":
		return PRESENT_MODE_MAILBOX, nil
	case "immediate":
		return PRESENT_MODE_IMMEDIATE, nil
	}
	return PRESENT_MODE_FIFO, fmt.Errorf("unknown present mode %q", name)
}

func (p PresentMode) String() string {
	switch p {
	case PRESENT_MODE_MAILBOX:
		return "mailbox"
	case PRESENT_MODE_IMMEDIATE:
		return "immediate"
	}
	return "fifo"
}

/** @brief How the window surface is configured. Width and height are never 0. */
type SurfaceConfig struct {
	Format      TextureFormat
	Width       uint32
	Height      uint32
	PresentMode PresentMode
}

type Colour struct {
	R, G, B, A float32
}

type LoadOperation int

const (
	LOAD_OPERATION_CLEAR LoadOperation = iota
	LOAD_OPERATION_LOAD
	LOAD_OPERATION_DONT_CARE
)

type StoreOperation int

const (
	STORE_OPERATION_STORE StoreOperation = iota
	STORE_OPERATION_DONT_CARE
)

/**
 * @brief Describes a single-colour-attachment pass. ColorTarget is the
 * multisampled texture, ResolveTarget the surface image it resolves into.
 */
type RenderPassDescriptor struct {
	Label          string
	ColorTarget    Texture
	ResolveTarget  SurfaceImage
	ClearColour    Colour
	LoadOperation  LoadOperation
	StoreOperation StoreOperation
}
