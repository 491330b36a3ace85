package loaders

import (
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

const (
	VertexShaderSuffix   = ".vert.spv"
	FragmentShaderSuffix = ".frag.spv"
)

/**
 * @brief Loads a vertex/fragment pair named <name>.vert.spv and
 * <name>.frag.spv from one directory.
 */
type ShaderLoader struct {
	Dir    string
	binary BinaryLoader
}

func (sl *ShaderLoader) Load(name string) (*metadata.ShaderSource, error) {
	vertex, err := sl.binary.Load(filepath.Join(sl.Dir, name+VertexShaderSuffix))
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", name, err)
	}
	fragment, err := sl.binary.Load(filepath.Join(sl.Dir, name+FragmentShaderSuffix))
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", name, err)
	}
	source := &metadata.ShaderSource{Name: name, Vertex: vertex, Fragment: fragment}
	if err := source.Validate(); err != nil {
		return nil, err
	}
	return source, nil
}

// ShaderName maps a compiled stage file back to the pair it belongs to.
func ShaderName(path string) (string, bool) {
	base := filepath.Base(path)
	for _, suffix := range []string{VertexShaderSuffix, FragmentShaderSuffix} {
		if len(base) > len(suffix) && base[len(base)-len(suffix):] == suffix {
			return base[:len(base)-len(suffix)], true
		}
	}
	return "", false
}
