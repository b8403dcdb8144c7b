package gltfbuild

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/gltfcomp/internal/mesh"
)

func TestExportToFileText(t *testing.T) {
	dir := t.TempDir()
	b := New(dir)
	matIndex := b.AddMaterial(quadMaterial())
	m := quadMesh(false)
	m.MaterialIndex = &matIndex
	meshIndex := b.AddMesh(m)
	node := newQuadNode(meshIndex)
	b.AddNode(node)

	path := filepath.Join(dir, "model.gltf")
	if err := b.ExportToFile(path, false); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	// The written document must be readable by a standard glTF loader.
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("reopening exported document: %v", err)
	}
	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Errorf("reopened document has %d meshes", len(doc.Meshes))
	}
	if len(doc.Materials) != 1 {
		t.Errorf("reopened document has %d materials", len(doc.Materials))
	}
	if len(doc.Nodes) != 1 || len(doc.Scenes) != 1 {
		t.Errorf("reopened document has %d nodes, %d scenes", len(doc.Nodes), len(doc.Scenes))
	}
	if len(doc.Samplers) != 1 {
		t.Errorf("default sampler missing, got %d samplers", len(doc.Samplers))
	}
}

func TestExportToFileBinary(t *testing.T) {
	dir := t.TempDir()
	b := New(dir)
	b.AddMesh(quadMesh(false))

	path := filepath.Join(dir, "model.glb")
	if err := b.ExportToFile(path, true); err != nil {
		t.Fatalf("binary export failed: %v", err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("reopening exported binary document: %v", err)
	}
	if len(doc.Meshes) != 1 {
		t.Errorf("reopened document has %d meshes", len(doc.Meshes))
	}
}

func TestExportToString(t *testing.T) {
	b := New(t.TempDir())
	b.AddMesh(quadMesh(false))

	s, err := b.ExportToString()
	if err != nil {
		t.Fatalf("export to string failed: %v", err)
	}
	if !strings.Contains(s, `"asset"`) || !strings.Contains(s, `"meshes"`) {
		t.Errorf("string export does not look like a glTF document: %.120s", s)
	}
}

func quadMaterial() mesh.Material {
	return mesh.DefaultMaterial("quad-material")
}

func newQuadNode(meshIndex uint32) *mesh.Node {
	n := mesh.NewNode("quad")
	n.MeshIndex = &meshIndex
	return n
}
