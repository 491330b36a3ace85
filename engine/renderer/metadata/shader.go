package metadata

import "fmt"

type ShaderStage int

const (
	SHADER_STAGE_VERTEX ShaderStage = iota
	SHADER_STAGE_FRAGMENT
)

func (s ShaderStage) String() string {
	if s == SHADER_STAGE_VERTEX {
		return "vertex"
	}
	return "fragment"
}

/**
 * @brief SPIR-V code for a vertex/fragment pair. Both stages use the
 * entry point "main" and share one interface: location 0 is a vec2
 * position, set 0 binding 0 the transform matrix, set 1 binding 0 the
 * entity parameters.
 */
type ShaderSource struct {
	Name     string
	Vertex   []uint32
	Fragment []uint32
}

const ShaderEntryPoint = "main"

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic uint32 = 0x07230203

func (s *ShaderSource) Validate() error {
	for stage, code := range map[ShaderStage][]uint32{
		SHADER_STAGE_VERTEX:   s.Vertex,
		SHADER_STAGE_FRAGMENT: s.Fragment,
	} {
		if len(code) == 0 {
			return fmt.Errorf("shader %s: empty %s stage", s.Name, stage)
		}
		if code[0] != SPIRVMagic {
			return fmt.Errorf("shader %s: %s stage is not SPIR-V", s.Name, stage)
		}
	}
	return nil
}
