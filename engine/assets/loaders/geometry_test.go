package loaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeometry(t *testing.T) {
	src := "0.0,0.5,0.0 1.0,0.0,0.0\r\n-0.5,-0.5 \n0.5,-0.5,0.0 0.0,x,1.0\n~\n0 1 2\n"

	data, err := ParseGeometry(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []math.Vec2{
		math.NewVec2(0, 0.5),
		math.NewVec2(-0.5, -0.5),
		math.NewVec2(0.5, -0.5),
	}, data.Vertices)
	assert.Equal(t, [][3]float32{{1, 0, 0}, {1, 1, 1}, {0, 1, 1}}, data.Colors)
	assert.Equal(t, []uint32{0, 1, 2}, data.Indices)
}

func TestParseGeometryErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad position", "a,b\n"},
		{"single coordinate", "1.0\n"},
		{"bad index", "0,0\n~\n0 x\n"},
		{"index out of range", "0,0\n1,1\n~\n0 1 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGeometry(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestGeometryLoaderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad"+GeometryExtension)
	require.NoError(t, os.WriteFile(path, []byte("0,0\n1,0\n1,1\n0,1\n~\n0 1 2 2 3 0\n"), 0o644))

	loader := &GeometryLoader{}
	data, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, data.Name)
	assert.Len(t, data.Vertices, 4)
	assert.Len(t, data.Indices, 6)

	_, err = loader.Load(filepath.Join(t.TempDir(), "missing.geo"))
	assert.Error(t, err)
}
