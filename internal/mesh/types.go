// Package mesh provides the exporter's mesh data model and vertex assembly.
package mesh

// Vertex is the interleaved vertex record written to the glTF buffer:
// position, normal, texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Byte layout of Vertex inside the interleaved buffer view.
const (
	VertexSize     = 32
	PositionOffset = 0
	NormalOffset   = 12
	TexCoordOffset = 24
)

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// PrimitiveMode is the glTF primitive topology.
type PrimitiveMode int

// Triangles is the default topology; the value matches the glTF enum.
const Triangles PrimitiveMode = 4

// Mesh holds a named triangle mesh ready for document insertion.
type Mesh struct {
	Name          string
	Vertices      []Vertex
	Indices       []uint32
	MaterialIndex *uint32 // document material index, nil means none
	Mode          PrimitiveMode
	Compress      bool
	CompressLevel int // Draco aggressiveness 1-10, 7 is the balanced default
}

// NewMesh returns a Mesh with default topology and compression settings.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:          name,
		Mode:          Triangles,
		Compress:      true,
		CompressLevel: 7,
	}
}

// Material describes a PBR metallic-roughness material. Texture fields are
// indices into the exporter's texture list, nil means no texture.
type Material struct {
	Name                     string     `yaml:"name"`
	BaseColor                [4]float32 `yaml:"base_color"`
	MetallicFactor           float32    `yaml:"metallic"`
	RoughnessFactor          float32    `yaml:"roughness"`
	BaseColorTexture         *int       `yaml:"base_color_texture,omitempty"`
	NormalTexture            *int       `yaml:"normal_texture,omitempty"`
	MetallicRoughnessTexture *int       `yaml:"metallic_roughness_texture,omitempty"`
}

// DefaultMaterial returns an opaque white material with no metalness.
func DefaultMaterial(name string) Material {
	return Material{
		Name:            name,
		BaseColor:       [4]float32{1, 1, 1, 1},
		MetallicFactor:  0,
		RoughnessFactor: 1,
	}
}

// Node is one scene-graph node. Children are caller-supplied node indices;
// no cycle detection is performed.
type Node struct {
	Name      string
	Transform [16]float32 // column-major 4x4, carried into the document verbatim
	MeshIndex *uint32
	Children  []uint32
}

// NewNode returns a Node with an identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Transform: IdentityTransform()}
}

// IdentityTransform returns the 4x4 identity matrix.
func IdentityTransform() [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Texture source kinds.
const (
	TextureFile   = "file"
	TexturePacked = "packed"
)

// TextureData is a texture input, either a file path or a packed raw pixel
// buffer with dimensions.
type TextureData struct {
	Kind     string `yaml:"type"`
	Name     string `yaml:"name"`
	Path     string `yaml:"path,omitempty"`
	Pixels   []byte `yaml:"data,omitempty"`
	Width    int    `yaml:"width,omitempty"`
	Height   int    `yaml:"height,omitempty"`
	Channels int    `yaml:"channels,omitempty"`
}
