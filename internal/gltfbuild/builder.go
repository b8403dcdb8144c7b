// Package gltfbuild assembles a glTF 2.0 document from mesh, material and
// texture inputs, laying out the shared binary buffer and its views.
package gltfbuild

import (
	"fmt"
	"image"
	"path/filepath"
	"strconv"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfcomp/internal/dracoenc"
	"github.com/Faultbox/gltfcomp/internal/logger"
	"github.com/Faultbox/gltfcomp/internal/mesh"
	"github.com/Faultbox/gltfcomp/internal/texture"
)

// DracoExtensionName is the glTF extension declaring Draco-compressed
// primitive data.
const DracoExtensionName = "KHR_draco_mesh_compression"

// DracoExtension is the KHR_draco_mesh_compression primitive payload: the
// buffer view holding the compressed blob and the semantic-to-codec
// attribute id map.
type DracoExtension struct {
	BufferView uint32            `json:"bufferView"`
	Attributes map[string]uint32 `json:"attributes"`
}

// MeshEncoder compresses a mesh at the given aggressiveness level.
type MeshEncoder func(m *mesh.Mesh, level int) ([]byte, error)

// Builder owns one glTF document and its backing buffer for the duration of
// a single export. It is not safe for concurrent use; concurrent exports
// need independent builders.
type Builder struct {
	doc         *gltf.Document
	textures    []mesh.TextureData
	exportDir   string
	useJPEG     bool
	jpegQuality int
	dracoUsed   bool
	finalized   bool
	encode      MeshEncoder
	log         *zap.Logger
}

// New creates a Builder writing texture side files into exportDir.
func New(exportDir string) *Builder {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "gltfcomp"
	doc.Scenes[0].Name = "Scene"

	return &Builder{
		doc:         doc,
		exportDir:   exportDir,
		useJPEG:     true,
		jpegQuality: 100,
		encode:      dracoenc.EncodeMesh,
		log:         logger.Named("gltfbuild"),
	}
}

// Document exposes the underlying document, for inspection and tests.
func (b *Builder) Document() *gltf.Document {
	return b.doc
}

// SetImageFormat selects the texture re-encoding format: JPEG with the
// given quality, or PNG at maximum compression.
func (b *Builder) SetImageFormat(useJPEG bool, quality int) {
	b.useJPEG = useJPEG
	b.jpegQuality = quality
}

// SetMeshEncoder replaces the geometry codec. The default is Draco.
func (b *Builder) SetMeshEncoder(enc MeshEncoder) {
	b.encode = enc
}

// PushTexture appends a texture input to the builder's texture list.
// Textures are materialized into the document lazily by AddTexture.
func (b *Builder) PushTexture(t mesh.TextureData) {
	b.textures = append(b.textures, t)
}

// CreateBufferView appends data to the single backing buffer, padded so the
// view's byte offset is 4-byte aligned, and returns the new view's index.
// Views with the vertex-array target carry the interleaved vertex stride.
func (b *Builder) CreateBufferView(data []byte, target gltf.Target) uint32 {
	// The buffer is created lazily; every view references buffer 0.
	if len(b.doc.Buffers) == 0 {
		b.doc.Buffers = append(b.doc.Buffers, &gltf.Buffer{Name: "buffer"})
	}
	buf := b.doc.Buffers[0]

	offset := len(buf.Data)
	for offset%4 != 0 {
		buf.Data = append(buf.Data, 0)
		offset++
	}
	buf.Data = append(buf.Data, data...)
	buf.ByteLength = uint32(len(buf.Data))

	view := &gltf.BufferView{
		Buffer:     0,
		ByteOffset: uint32(offset),
		ByteLength: uint32(len(data)),
		Target:     target,
	}
	if target == gltf.TargetArrayBuffer {
		view.ByteStride = mesh.VertexSize
	}

	viewIndex := uint32(len(b.doc.BufferViews))
	b.doc.BufferViews = append(b.doc.BufferViews, view)
	return viewIndex
}

// AddTexture materializes the texture at the given list position: decodes
// its pixels, re-encodes them into the export directory as
// "<index>.jpg|.png", and registers an Image/Texture pair. Returns the
// document texture index, or ok=false when the index is out of range or the
// texture cannot be loaded; failures never abort the caller.
func (b *Builder) AddTexture(idx int) (uint32, bool) {
	if idx < 0 || idx >= len(b.textures) {
		b.log.Warn("texture index out of range", zap.Int("index", idx),
			zap.Int("textures", len(b.textures)))
		return 0, false
	}
	t := b.textures[idx]

	var (
		img image.Image
		err error
	)
	switch t.Kind {
	case mesh.TextureFile:
		img, err = texture.LoadFile(t.Path)
	case mesh.TexturePacked:
		img, err = texture.FromPixels(t.Pixels, t.Width, t.Height, t.Channels)
	default:
		err = fmt.Errorf("unknown texture kind %q", t.Kind)
	}
	if err != nil {
		b.log.Warn("failed to load texture", zap.Int("index", idx), zap.Error(err))
		return 0, false
	}

	ext, mimeType := ".png", "image/png"
	if b.useJPEG {
		ext, mimeType = ".jpg", "image/jpeg"
	}
	fileName := strconv.Itoa(idx) + ext

	if err := texture.WriteFile(filepath.Join(b.exportDir, fileName), img, b.useJPEG, b.jpegQuality); err != nil {
		b.log.Warn("failed to write texture", zap.Int("index", idx), zap.Error(err))
		return 0, false
	}

	imageIndex := uint32(len(b.doc.Images))
	b.doc.Images = append(b.doc.Images, &gltf.Image{
		Name:     t.Name,
		URI:      fileName,
		MimeType: mimeType,
	})

	textureIndex := uint32(len(b.doc.Textures))
	b.doc.Textures = append(b.doc.Textures, &gltf.Texture{
		Sampler: gltf.Index(0),
		Source:  gltf.Index(imageIndex),
	})

	b.log.Debug("added texture", zap.Uint32("index", textureIndex), zap.String("file", fileName))
	return textureIndex, true
}

// AddMaterial creates a document material from the PBR factors and wires in
// each of the three optional texture slots whose resolution succeeds.
func (b *Builder) AddMaterial(m mesh.Material) uint32 {
	mat := &gltf.Material{
		Name: m.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{m.BaseColor[0], m.BaseColor[1], m.BaseColor[2], m.BaseColor[3]},
			MetallicFactor:  gltf.Float(m.MetallicFactor),
			RoughnessFactor: gltf.Float(m.RoughnessFactor),
		},
	}

	if m.BaseColorTexture != nil {
		if texIndex, ok := b.AddTexture(*m.BaseColorTexture); ok {
			mat.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: texIndex}
		}
	}
	if m.MetallicRoughnessTexture != nil {
		if texIndex, ok := b.AddTexture(*m.MetallicRoughnessTexture); ok {
			mat.PBRMetallicRoughness.MetallicRoughnessTexture = &gltf.TextureInfo{Index: texIndex}
		}
	}
	if m.NormalTexture != nil {
		if texIndex, ok := b.AddTexture(*m.NormalTexture); ok {
			mat.NormalTexture = &gltf.NormalTexture{Index: gltf.Index(texIndex)}
		}
	}

	materialIndex := uint32(len(b.doc.Materials))
	b.doc.Materials = append(b.doc.Materials, mat)
	return materialIndex
}

// AddMesh appends the mesh as a single-primitive document mesh and returns
// its index. When compression is requested the geometry is encoded into one
// opaque buffer view referenced by the Draco extension; codec failure falls
// back to the uncompressed interleaved layout transparently.
func (b *Builder) AddMesh(m *mesh.Mesh) uint32 {
	gltfMesh := &gltf.Mesh{Name: m.Name}
	prim := &gltf.Primitive{
		Mode:       b.primitiveMode(m),
		Attributes: gltf.Attribute{},
	}

	if m.Compress {
		if done := b.addCompressedPrimitive(m, prim); done {
			gltfMesh.Primitives = append(gltfMesh.Primitives, prim)
			return b.appendMesh(gltfMesh)
		}
		// Fall through to the uncompressed path.
	}

	if len(m.Vertices) > 0 {
		vertexView := b.CreateBufferView(vertexBytes(m.Vertices), gltf.TargetArrayBuffer)
		bounds := mesh.ComputeBounds(m.Vertices)

		prim.Attributes[gltf.POSITION] = b.appendAccessor(&gltf.Accessor{
			BufferView:    gltf.Index(vertexView),
			ByteOffset:    mesh.PositionOffset,
			ComponentType: gltf.ComponentFloat,
			Count:         uint32(len(m.Vertices)),
			Type:          gltf.AccessorVec3,
			Min:           bounds.Min[:],
			Max:           bounds.Max[:],
		})
		prim.Attributes[gltf.NORMAL] = b.appendAccessor(&gltf.Accessor{
			BufferView:    gltf.Index(vertexView),
			ByteOffset:    mesh.NormalOffset,
			ComponentType: gltf.ComponentFloat,
			Count:         uint32(len(m.Vertices)),
			Type:          gltf.AccessorVec3,
		})
		prim.Attributes[gltf.TEXCOORD_0] = b.appendAccessor(&gltf.Accessor{
			BufferView:    gltf.Index(vertexView),
			ByteOffset:    mesh.TexCoordOffset,
			ComponentType: gltf.ComponentFloat,
			Count:         uint32(len(m.Vertices)),
			Type:          gltf.AccessorVec2,
		})
	}

	if len(m.Indices) > 0 {
		indexView := b.CreateBufferView(indexBytes(m.Indices), gltf.TargetElementArrayBuffer)
		prim.Indices = gltf.Index(b.appendAccessor(&gltf.Accessor{
			BufferView:    gltf.Index(indexView),
			ComponentType: gltf.ComponentUint,
			Count:         uint32(len(m.Indices)),
			Type:          gltf.AccessorScalar,
		}))
	}

	if m.MaterialIndex != nil {
		prim.Material = gltf.Index(*m.MaterialIndex)
	}

	gltfMesh.Primitives = append(gltfMesh.Primitives, prim)
	return b.appendMesh(gltfMesh)
}

// addCompressedPrimitive runs the geometry codec and, on success, fills the
// primitive with view-less accessors and the Draco extension record.
// Returns false when the codec fails and the caller must fall back.
func (b *Builder) addCompressedPrimitive(m *mesh.Mesh, prim *gltf.Primitive) bool {
	blob, err := b.encode(m, m.CompressLevel)
	if err != nil {
		b.log.Warn("geometry compression failed, exporting uncompressed",
			zap.String("mesh", m.Name), zap.Error(err))
		return false
	}

	dracoView := b.CreateBufferView(blob, gltf.TargetNone)

	// Compressed accessors carry no direct buffer view; counts and position
	// bounds still describe the uncompressed source data.
	bounds := mesh.ComputeBounds(m.Vertices)
	prim.Attributes[gltf.POSITION] = b.appendAccessor(&gltf.Accessor{
		ComponentType: gltf.ComponentFloat,
		Count:         uint32(len(m.Vertices)),
		Type:          gltf.AccessorVec3,
		Min:           bounds.Min[:],
		Max:           bounds.Max[:],
	})
	prim.Attributes[gltf.NORMAL] = b.appendAccessor(&gltf.Accessor{
		ComponentType: gltf.ComponentFloat,
		Count:         uint32(len(m.Vertices)),
		Type:          gltf.AccessorVec3,
	})
	prim.Attributes[gltf.TEXCOORD_0] = b.appendAccessor(&gltf.Accessor{
		ComponentType: gltf.ComponentFloat,
		Count:         uint32(len(m.Vertices)),
		Type:          gltf.AccessorVec2,
	})
	prim.Indices = gltf.Index(b.appendAccessor(&gltf.Accessor{
		ComponentType: gltf.ComponentUint,
		Count:         uint32(len(m.Indices)),
		Type:          gltf.AccessorScalar,
	}))

	prim.Extensions = gltf.Extensions{
		DracoExtensionName: DracoExtension{
			BufferView: dracoView,
			Attributes: map[string]uint32{
				gltf.POSITION:   dracoenc.AttrPosition,
				gltf.NORMAL:     dracoenc.AttrNormal,
				gltf.TEXCOORD_0: dracoenc.AttrTexCoord,
			},
		},
	}

	if m.MaterialIndex != nil {
		prim.Material = gltf.Index(*m.MaterialIndex)
	}

	b.dracoUsed = true
	return true
}

// primitiveMode maps the model topology onto the library's enum, which is
// not the glTF wire value.
func (b *Builder) primitiveMode(m *mesh.Mesh) gltf.PrimitiveMode {
	switch m.Mode {
	case mesh.Triangles:
		return gltf.PrimitiveTriangles
	default:
		b.log.Warn("unsupported primitive mode, emitting triangles",
			zap.String("mesh", m.Name), zap.Int("mode", int(m.Mode)))
		return gltf.PrimitiveTriangles
	}
}

// AddNode appends a node with its transform, optional mesh reference and
// child list, and registers it as a root of the default scene. Child
// indices are trusted as supplied; nesting under another node is the
// caller's responsibility.
func (b *Builder) AddNode(n *mesh.Node) uint32 {
	transform := n.Transform
	if transform == ([16]float32{}) {
		transform = mesh.IdentityTransform()
	}

	node := &gltf.Node{
		Name:     n.Name,
		Matrix:   transform,
		Children: append([]uint32(nil), n.Children...),
	}
	if n.MeshIndex != nil {
		node.Mesh = gltf.Index(*n.MeshIndex)
	}

	nodeIndex := uint32(len(b.doc.Nodes))
	b.doc.Nodes = append(b.doc.Nodes, node)

	// Flat scene graph: every node is a scene root.
	b.doc.Scenes[0].Nodes = append(b.doc.Scenes[0].Nodes, nodeIndex)

	return nodeIndex
}

func (b *Builder) appendAccessor(a *gltf.Accessor) uint32 {
	index := uint32(len(b.doc.Accessors))
	b.doc.Accessors = append(b.doc.Accessors, a)
	return index
}

func (b *Builder) appendMesh(m *gltf.Mesh) uint32 {
	index := uint32(len(b.doc.Meshes))
	b.doc.Meshes = append(b.doc.Meshes, m)
	return index
}

// finalize injects the default sampler and, when any mesh compressed, the
// extension declarations. Runs exactly once per builder.
func (b *Builder) finalize() {
	if b.finalized {
		return
	}
	b.finalized = true

	if len(b.doc.Samplers) == 0 {
		b.doc.Samplers = append(b.doc.Samplers, &gltf.Sampler{
			MagFilter: gltf.MagLinear,
			MinFilter: gltf.MinLinearMipMapLinear,
			WrapS:     gltf.WrapRepeat,
			WrapT:     gltf.WrapRepeat,
		})
	}

	if b.dracoUsed {
		b.doc.ExtensionsUsed = append(b.doc.ExtensionsUsed, DracoExtensionName)
		b.doc.ExtensionsRequired = append(b.doc.ExtensionsRequired, DracoExtensionName)
	}
}
