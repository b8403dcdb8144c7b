package gltfbuild

import (
	"fmt"
	"os"

	"github.com/qmuntal/gltf"
)

// ExportToFile finalizes the document and writes it to path, either as a
// binary .glb container or as text glTF with the buffer embedded.
func (b *Builder) ExportToFile(path string, binary bool) error {
	b.finalize()

	if binary {
		if err := gltf.SaveBinary(b.doc, path); err != nil {
			return fmt.Errorf("writing binary document %s: %w", path, err)
		}
		return nil
	}

	// Text output embeds the buffer as a data URI so the document stands
	// alone next to its texture side files.
	if len(b.doc.Buffers) > 0 {
		b.doc.Buffers[0].EmbeddedResource()
	}
	if err := gltf.Save(b.doc, path); err != nil {
		return fmt.Errorf("writing document %s: %w", path, err)
	}
	return nil
}

// ExportToString finalizes the document and returns its textual form. The
// document goes through a scratch temporary file that is removed on every
// exit path.
func (b *Builder) ExportToString() (string, error) {
	b.finalize()

	tmp, err := os.CreateTemp("", "gltfcomp-*.gltf")
	if err != nil {
		return "", fmt.Errorf("creating scratch file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if len(b.doc.Buffers) > 0 {
		b.doc.Buffers[0].EmbeddedResource()
	}
	if err := gltf.Save(b.doc, tmpPath); err != nil {
		return "", fmt.Errorf("writing scratch document: %w", err)
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("reading scratch document: %w", err)
	}
	return string(data), nil
}
