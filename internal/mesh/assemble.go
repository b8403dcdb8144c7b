package mesh

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gltfcomp/internal/logger"
)

// AssembleVertices builds one Vertex per triangle corner from flat source
// arrays. Positions hold 3 floats per source vertex and are resolved through
// the index array; normals hold 3 floats per corner and define the corner
// count; UVs hold 2 floats per corner and are optional.
//
// The source data is Z-up; the output is Y-up. Positions and normals are
// remapped as x, z, -y.
//
// Malformed per-corner data degrades instead of failing: a corner whose
// position index is out of bounds is skipped, and missing UVs become (0,0).
// Normals cannot go out of range because they define the corner count.
func AssembleVertices(positions, normals, uvs []float32, indices []uint32) []Vertex {
	corners := len(normals) / 3
	vertices := make([]Vertex, 0, corners)

	hasUVs := len(uvs) > 0 && len(uvs) >= corners*2

	for i := 0; i < corners; i++ {
		if i >= len(indices) {
			logger.Warn("index array shorter than corner count, truncating",
				zap.Int("corner", i), zap.Int("indices", len(indices)))
			break
		}

		var v Vertex
		posIndex := int(indices[i])

		if posIndex*3+2 >= len(positions) {
			logger.Warn("position index out of bounds, skipping corner",
				zap.Int("corner", i), zap.Int("position_index", posIndex))
			continue
		}

		v.Position[0] = positions[posIndex*3+0]
		v.Position[1] = positions[posIndex*3+2]
		v.Position[2] = -positions[posIndex*3+1]

		// The corner count derives from the normals array, so the normal
		// read is always in range; only the indirect position lookup above
		// can run out of bounds.
		v.Normal[0] = normals[i*3+0]
		v.Normal[1] = normals[i*3+2]
		v.Normal[2] = -normals[i*3+1]

		if hasUVs && i*2+1 < len(uvs) {
			v.TexCoord[0] = uvs[i*2+0]
			v.TexCoord[1] = uvs[i*2+1]
		}

		vertices = append(vertices, v)
	}

	return vertices
}

// ComputeBounds returns the per-axis min/max of the vertex positions.
// Bounds are always taken from uncompressed vertex data; compressed
// accessors rely on them for spatial culling.
func ComputeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}

	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for i := 1; i < len(vertices); i++ {
		p := vertices[i].Position
		for axis := 0; axis < 3; axis++ {
			if p[axis] < b.Min[axis] {
				b.Min[axis] = p[axis]
			}
			if p[axis] > b.Max[axis] {
				b.Max[axis] = p[axis]
			}
		}
	}
	return b
}
