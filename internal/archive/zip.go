// Package archive bundles an exported document and its side files into a
// single zip archive.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfcomp/internal/logger"
)

// DocumentName is the canonical name of the primary document inside the
// archive, regardless of its name on disk.
const DocumentName = "model.gltf"

// Pack creates a zip archive at zipPath containing the primary document
// under DocumentName plus each existing side file under its base name.
// Missing side files are skipped with a diagnostic; failing to create or
// finalize the archive itself is fatal to the operation.
func Pack(documentPath, zipPath string, sideFiles []string) error {
	log := logger.Named("archive")

	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("creating archive %s: %w", zipPath, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	defer zw.Close()

	// Best-compression deflate, matching the rest of the pipeline's
	// size-over-speed trade.
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	if err := addFile(zw, DocumentName, documentPath); err != nil {
		return fmt.Errorf("adding document to archive: %w", err)
	}

	for _, path := range sideFiles {
		if _, err := os.Stat(path); err != nil {
			log.Warn("side file missing, skipping", zap.String("path", path))
			continue
		}
		if err := addFile(zw, filepath.Base(path), path); err != nil {
			log.Warn("failed to add side file", zap.String("path", path), zap.Error(err))
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive %s: %w", zipPath, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing archive %s: %w", zipPath, err)
	}

	log.Info("archive written", zap.String("path", zipPath))
	return nil
}

// addFile streams one file into the archive under the given entry name.
func addFile(zw *zip.Writer, name, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}
