package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spaghettifunk/anima2d/engine/math"
)

const GeometryExtension = ".geo"

// indexSeparator is the line that ends the vertex section.
const indexSeparator = "~"

/**
 * @brief Vertex data read from a geometry file. Colors has one entry per
 * vertex; the z coordinate of a position is read but not kept.
 */
type GeometryData struct {
	Name     string
	Vertices []math.Vec2
	Colors   [][3]float32
	Indices  []uint32
}

// GeometryLoader parses files of the form
//
//	x,y[,z] [r,g,b]
//	...
//	~
//	i i i ...
type GeometryLoader struct{}

func (gl *GeometryLoader) Load(path string) (*GeometryData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := ParseGeometry(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	data.Name = path
	return data, nil
}

func ParseGeometry(r io.Reader) (*GeometryData, error) {
	data := &GeometryData{}
	indexSection := false
	line := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == indexSeparator {
			indexSection = true
			continue
		}
		if indexSection {
			for _, field := range strings.Fields(text) {
				index, err := strconv.ParseUint(field, 10, 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad index %q", line, field)
				}
				data.Indices = append(data.Indices, uint32(index))
			}
			continue
		}

		fields := strings.Fields(text)
		position, err := parseComponents(fields[0], false)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(position) < 2 {
			return nil, fmt.Errorf("line %d: position needs at least x and y", line)
		}
		color := [3]float32{1, 1, 1}
		if len(fields) > 1 {
			parsed, _ := parseComponents(fields[1], true)
			copy(color[:], parsed)
		}
		data.Vertices = append(data.Vertices, math.NewVec2(position[0], position[1]))
		data.Colors = append(data.Colors, color)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for _, index := range data.Indices {
		if int(index) >= len(data.Vertices) {
			return nil, fmt.Errorf("index %d out of range for %d vertices", index, len(data.Vertices))
		}
	}
	return data, nil
}

// parseComponents reads up to three comma separated floats. In lenient
// mode unparsable components become 1.
func parseComponents(field string, lenient bool) ([]float32, error) {
	parts := strings.Split(field, ",")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	out := make([]float32, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 32)
		if err != nil {
			if !lenient {
				return nil, fmt.Errorf("bad number %q", part)
			}
			out[i] = 1
			continue
		}
		out[i] = float32(v)
	}
	return out, nil
}
