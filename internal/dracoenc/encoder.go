// Package dracoenc compresses triangle meshes with the Draco codec. The
// encoder side of the reference library has no Go bindings, so the package
// carries its own cgo shim over draco::TriangleSoupMeshBuilder and
// draco::Encoder; decoding in tests goes through qmuntal/draco-go.
package dracoenc

// #include <stddef.h>
// #include "encode.h"
import "C"

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/gltfcomp/internal/logger"
	"github.com/Faultbox/gltfcomp/internal/mesh"
)

// Quantization bit depths, chosen for acceptable visual fidelity vs size.
// These are fixed constants, never derived from the mesh.
const (
	positionQuantizationBits = 14
	normalQuantizationBits   = 10
	texCoordQuantizationBits = 12
)

// Draco attribute ids in registration order. The KHR_draco_mesh_compression
// attribute map in the document must use the same ids.
const (
	AttrPosition uint32 = 0
	AttrNormal   uint32 = 1
	AttrTexCoord uint32 = 2
)

// EncodeMesh compresses the mesh's vertex and index data into an opaque
// Draco blob. Level is the aggressiveness 1-10; the codec speed on both the
// encode and decode axis is 10-level. A non-nil error means the caller must
// fall back to uncompressed export.
func EncodeMesh(m *mesh.Mesh, level int) ([]byte, error) {
	if level < 1 || level > 10 {
		logger.Debug("draco level out of range, using balanced default",
			zap.Int("level", level))
		level = 7
	}

	numFaces := len(m.Indices) / 3
	if numFaces == 0 || len(m.Vertices) == 0 {
		return nil, fmt.Errorf("mesh %q has no faces to compress", m.Name)
	}

	// The codec consumes per-corner attribute streams: face i is the corner
	// triple [3i, 3i+1, 3i+2].
	positions := make([]float32, 0, numFaces*9)
	normals := make([]float32, 0, numFaces*9)
	texCoords := make([]float32, 0, numFaces*6)
	for _, idx := range m.Indices[:numFaces*3] {
		if int(idx) >= len(m.Vertices) {
			return nil, fmt.Errorf("mesh %q index %d out of range (%d vertices)",
				m.Name, idx, len(m.Vertices))
		}
		v := m.Vertices[idx]
		positions = append(positions, v.Position[0], v.Position[1], v.Position[2])
		normals = append(normals, v.Normal[0], v.Normal[1], v.Normal[2])
		texCoords = append(texCoords, v.TexCoord[0], v.TexCoord[1])
	}

	// Encoder state is per call, never shared across exports.
	speed := int32(10 - level)
	var errBuf [256]C.char
	blob := C.dracoencEncode(
		(*C.float)(unsafe.Pointer(&positions[0])),
		(*C.float)(unsafe.Pointer(&normals[0])),
		(*C.float)(unsafe.Pointer(&texCoords[0])),
		C.uint32_t(numFaces),
		C.int32_t(speed),
		C.int32_t(positionQuantizationBits),
		C.int32_t(normalQuantizationBits),
		C.int32_t(texCoordQuantizationBits),
		&errBuf[0],
		C.size_t(len(errBuf)),
	)
	if blob == nil {
		return nil, fmt.Errorf("draco encoding failed for mesh %q: %s",
			m.Name, C.GoString(&errBuf[0]))
	}
	defer C.dracoencBlobRelease(blob)

	data := C.GoBytes(unsafe.Pointer(C.dracoencBlobData(blob)),
		C.int(C.dracoencBlobSize(blob)))

	logger.Debug("draco encoded mesh",
		zap.String("mesh", m.Name),
		zap.Int("faces", numFaces),
		zap.Int("level", level),
		zap.Int("bytes", len(data)))

	return data, nil
}
