// Package main is the entry point for the gltfcomp exporter CLI.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gltfcomp/internal/config"
	"github.com/Faultbox/gltfcomp/internal/exporter"
	"github.com/Faultbox/gltfcomp/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== gltfcomp exporter ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: gltfcomp [flags] mesh.yaml [mesh.yaml ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	opts := exporter.Options{
		UseDraco:    cfg.Draco.Enabled,
		DracoLevel:  cfg.Draco.Level,
		UseJPEG:     cfg.Texture.JPEG,
		JPEGQuality: cfg.Texture.Quality,
		Zip:         cfg.Output.Zip,
		Binary:      cfg.Output.Binary,
	}

	failed := 0
	for _, path := range flag.Args() {
		if err := exportFile(path, cfg, opts); err != nil {
			logger.Error("export failed", zap.String("input", path), zap.Error(err))
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}

	logger.Info("all exports completed")
}

// exportFile reads one mesh description and exports it into the
// configured output directory.
func exportFile(path string, cfg *config.Config, opts exporter.Options) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading mesh description: %w", err)
	}

	var data exporter.MeshData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parsing mesh description %s: %w", path, err)
	}
	if data.Name == "" {
		data.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ext := ".gltf"
	if opts.Binary {
		ext = ".glb"
	}
	outPath := filepath.Join(cfg.Output.Dir, data.Name+ext)

	return exporter.Export(&data, cfg.Output.Dir, outPath, opts)
}
