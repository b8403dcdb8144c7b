package gltfbuild

import (
	"encoding/binary"
	"math"

	"github.com/Faultbox/gltfcomp/internal/mesh"
)

// vertexBytes serializes vertices into the interleaved little-endian layout
// described by the Vertex offsets: position, normal, texcoord.
func vertexBytes(vertices []mesh.Vertex) []byte {
	buf := make([]byte, len(vertices)*mesh.VertexSize)
	off := 0
	put := func(f float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
		off += 4
	}
	for _, v := range vertices {
		put(v.Position[0])
		put(v.Position[1])
		put(v.Position[2])
		put(v.Normal[0])
		put(v.Normal[1])
		put(v.Normal[2])
		put(v.TexCoord[0])
		put(v.TexCoord[1])
	}
	return buf
}

// indexBytes serializes indices as little-endian unsigned 32-bit values.
func indexBytes(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
