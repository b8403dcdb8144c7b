// Package exporter drives a full mesh-to-glTF export: vertex assembly,
// document building, serialization and optional archive packaging.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/gltfcomp/internal/archive"
	"github.com/Faultbox/gltfcomp/internal/gltfbuild"
	"github.com/Faultbox/gltfcomp/internal/logger"
	"github.com/Faultbox/gltfcomp/internal/mesh"
)

// MeshData is the exporter's input record: flat attribute arrays in the
// source's Z-up convention plus texture and material descriptors.
type MeshData struct {
	Name      string             `yaml:"name"`
	Positions []float32          `yaml:"vertices"`
	Normals   []float32          `yaml:"normals"`
	UVs       []float32          `yaml:"uvs"`
	Indices   []uint32           `yaml:"indices"`
	Textures  []mesh.TextureData `yaml:"textures"`
	Materials []mesh.Material    `yaml:"materials"`
}

// Options are the scalar export switches.
type Options struct {
	UseDraco    bool
	DracoLevel  int // 1-10
	UseJPEG     bool
	JPEGQuality int // 0-100
	Zip         bool
	Binary      bool
}

// DefaultOptions returns balanced compression with JPEG textures.
func DefaultOptions() Options {
	return Options{
		UseDraco:    true,
		DracoLevel:  7,
		UseJPEG:     true,
		JPEGQuality: 100,
	}
}

// Export converts the mesh data into a glTF document at outputPath, writing
// texture side files into exportDir. With Options.Zip the document and side
// files are replaced by a single archive next to outputPath.
func Export(data *MeshData, exportDir, outputPath string, opts Options) error {
	log := logger.Named("exporter")
	if exportDir == "" {
		exportDir = "."
	}

	b, meshIndex := populate(data, exportDir, opts)

	if err := b.ExportToFile(outputPath, opts.Binary); err != nil {
		return fmt.Errorf("exporting %s: %w", data.Name, err)
	}
	log.Info("document written",
		zap.String("mesh", data.Name),
		zap.String("path", outputPath),
		zap.Uint32("mesh_index", meshIndex))

	if !opts.Zip {
		return nil
	}

	sideFiles := textureSideFiles(exportDir, len(data.Textures), opts.UseJPEG)
	zipPath := replaceExt(outputPath, ".zip")
	if err := archive.Pack(outputPath, zipPath, sideFiles); err != nil {
		return fmt.Errorf("archiving %s: %w", data.Name, err)
	}

	// The archive replaces the loose files.
	if err := os.Remove(outputPath); err != nil {
		log.Warn("failed to remove archived document", zap.Error(err))
	}
	for _, path := range sideFiles {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove archived side file",
				zap.String("path", path), zap.Error(err))
		}
	}

	return nil
}

// ExportString converts the mesh data and returns the textual document
// instead of writing it. Texture side files are still written to exportDir.
func ExportString(data *MeshData, exportDir string, opts Options) (string, error) {
	if exportDir == "" {
		exportDir = "."
	}
	b, _ := populate(data, exportDir, opts)

	s, err := b.ExportToString()
	if err != nil {
		return "", fmt.Errorf("exporting %s: %w", data.Name, err)
	}
	return s, nil
}

// populate runs the build sequence shared by both outputs: textures pushed
// first, then one material/mesh/node triple.
func populate(data *MeshData, exportDir string, opts Options) (*gltfbuild.Builder, uint32) {
	b := gltfbuild.New(exportDir)
	b.SetImageFormat(opts.UseJPEG, opts.JPEGQuality)

	vertices := mesh.AssembleVertices(data.Positions, data.Normals, data.UVs, data.Indices)

	for _, t := range data.Textures {
		b.PushTexture(t)
	}

	mat := pickMaterial(data)
	matIndex := b.AddMaterial(mat)

	m := mesh.NewMesh(data.Name)
	m.Vertices = vertices
	m.MaterialIndex = &matIndex
	m.Compress = opts.UseDraco
	m.CompressLevel = opts.DracoLevel

	// Assembly emits one vertex per corner, so the triangle list is the
	// corner sequence itself.
	m.Indices = make([]uint32, len(vertices))
	for i := range m.Indices {
		m.Indices[i] = uint32(i)
	}

	meshIndex := b.AddMesh(m)

	node := mesh.NewNode(data.Name)
	node.MeshIndex = &meshIndex
	b.AddNode(node)

	return b, meshIndex
}

// pickMaterial uses the first caller-supplied material descriptor, or
// synthesizes a default wiring the leading texture slots.
func pickMaterial(data *MeshData) mesh.Material {
	if len(data.Materials) > 0 {
		return data.Materials[0]
	}

	mat := mesh.DefaultMaterial(data.Name + "Material")
	mat.RoughnessFactor = 0.8
	if len(data.Textures) > 0 {
		idx := 0
		mat.BaseColorTexture = &idx
	}
	if len(data.Textures) > 1 {
		idx := 1
		mat.NormalTexture = &idx
	}
	if len(data.Textures) > 2 {
		idx := 2
		mat.MetallicRoughnessTexture = &idx
	}
	return mat
}

// textureSideFiles lists the side-file paths the texture stage writes,
// one per input texture, named by list index.
func textureSideFiles(exportDir string, count int, useJPEG bool) []string {
	ext := ".png"
	if useJPEG {
		ext = ".jpg"
	}
	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		paths = append(paths, filepath.Join(exportDir, strconv.Itoa(i)+ext))
	}
	return paths
}

// replaceExt swaps the path's extension, appending when there is none.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
