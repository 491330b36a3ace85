package metadata

/** @brief Determines face culling mode during rendering. */
type FaceCullMode int

const (
	/** @brief No faces are culled. */
	FaceCullModeNone FaceCullMode = 0x0
	/** @brief Only front faces are culled. */
	FaceCullModeFront FaceCullMode = 0x1
	/** @brief Only back faces are culled. */
	FaceCullModeBack FaceCullMode = 0x2
)

// Fixed state every entity pipeline is built with.
const (
	// Bytes per vertex: one vec2 of float32.
	VertexStride uint32 = 8
	// Bytes per index.
	IndexSize uint32 = 4
	// Binding set slots.
	TransformSetSlot uint32 = 0
	ParameterSetSlot uint32 = 1

	DefaultCullMode = FaceCullModeNone
)
