package loaders

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spirv(words ...uint32) []byte {
	out := make([]byte, 0, 4*(len(words)+1))
	out = binary.LittleEndian.AppendUint32(out, metadata.SPIRVMagic)
	for _, w := range words {
		out = binary.LittleEndian.AppendUint32(out, w)
	}
	return out
}

func TestBytesToBytecode(t *testing.T) {
	code := bytesToBytecode([]byte{0x03, 0x02, 0x23, 0x07, 0x01, 0x00, 0x00, 0x00})
	assert.Equal(t, []uint32{metadata.SPIRVMagic, 1}, code)
}

func TestBinaryLoader(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.spv")
	require.NoError(t, os.WriteFile(good, spirv(0x10000, 7), 0o644))
	odd := filepath.Join(dir, "odd.spv")
	require.NoError(t, os.WriteFile(odd, []byte{1, 2, 3}, 0o644))
	wrong := filepath.Join(dir, "wrong.spv")
	require.NoError(t, os.WriteFile(wrong, []byte{0, 0, 0, 0}, 0o644))

	loader := &BinaryLoader{}
	code, err := loader.Load(good)
	require.NoError(t, err)
	assert.Equal(t, []uint32{metadata.SPIRVMagic, 0x10000, 7}, code)

	_, err = loader.Load(odd)
	assert.Error(t, err)
	_, err = loader.Load(wrong)
	assert.Error(t, err)
}

func TestShaderLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "color.vert.spv"), spirv(1), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "color.frag.spv"), spirv(2), 0o644))

	loader := &ShaderLoader{Dir: dir}
	source, err := loader.Load("color")
	require.NoError(t, err)
	assert.Equal(t, "color", source.Name)
	assert.Equal(t, []uint32{metadata.SPIRVMagic, 1}, source.Vertex)
	assert.Equal(t, []uint32{metadata.SPIRVMagic, 2}, source.Fragment)

	_, err = loader.Load("basic")
	assert.Error(t, err)
}

func TestShaderName(t *testing.T) {
	name, ok := ShaderName("/tmp/shaders/basic.frag.spv")
	assert.True(t, ok)
	assert.Equal(t, "basic", name)

	_, ok = ShaderName("basic.frag")
	assert.False(t, ok)
	_, ok = ShaderName(".vert.spv")
	assert.False(t, ok)
}
