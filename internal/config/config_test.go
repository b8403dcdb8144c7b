package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output.Dir != "." {
		t.Errorf("expected output dir '.', got %s", cfg.Output.Dir)
	}
	if cfg.Output.Binary {
		t.Error("expected binary output to be false by default")
	}
	if cfg.Output.Zip {
		t.Error("expected zip to be false by default")
	}

	if !cfg.Draco.Enabled {
		t.Error("expected draco to be enabled by default")
	}
	if cfg.Draco.Level != 7 {
		t.Errorf("expected draco level 7, got %d", cfg.Draco.Level)
	}

	if !cfg.Texture.JPEG {
		t.Error("expected jpeg output to be true by default")
	}
	if cfg.Texture.Quality != 100 {
		t.Errorf("expected jpeg quality 100, got %d", cfg.Texture.Quality)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
output:
  dir: /tmp/export
  binary: true
  zip: true

draco:
  enabled: false
  level: 3

texture:
  jpeg: false
  quality: 85

logging:
  level: "debug"
  log_file: "export.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Output.Dir != "/tmp/export" {
		t.Errorf("expected output dir /tmp/export, got %s", cfg.Output.Dir)
	}
	if !cfg.Output.Binary {
		t.Error("expected binary output to be true")
	}
	if !cfg.Output.Zip {
		t.Error("expected zip to be true")
	}
	if cfg.Draco.Enabled {
		t.Error("expected draco to be disabled")
	}
	if cfg.Draco.Level != 3 {
		t.Errorf("expected draco level 3, got %d", cfg.Draco.Level)
	}
	if cfg.Texture.JPEG {
		t.Error("expected jpeg to be false")
	}
	if cfg.Texture.Quality != 85 {
		t.Errorf("expected quality 85, got %d", cfg.Texture.Quality)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "export.log" {
		t.Errorf("expected log file 'export.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
draco:
  level: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "no-draco flag",
			setup: func() {
				*flagNoDraco = true
			},
			verify: func(cfg *Config) {
				if cfg.Draco.Enabled {
					t.Error("expected draco to be disabled with no-draco flag")
				}
			},
			teardown: func() {
				*flagNoDraco = false
			},
		},
		{
			name: "draco level flag",
			setup: func() {
				*flagDracoLevel = 9
			},
			verify: func(cfg *Config) {
				if cfg.Draco.Level != 9 {
					t.Errorf("expected draco level 9, got %d", cfg.Draco.Level)
				}
			},
			teardown: func() {
				*flagDracoLevel = 0
			},
		},
		{
			name: "png flag",
			setup: func() {
				*flagPNG = true
			},
			verify: func(cfg *Config) {
				if cfg.Texture.JPEG {
					t.Error("expected jpeg to be false with png flag")
				}
			},
			teardown: func() {
				*flagPNG = false
			},
		},
		{
			name: "out and zip flags",
			setup: func() {
				*flagOut = "/tmp/models"
				*flagZip = true
			},
			verify: func(cfg *Config) {
				if cfg.Output.Dir != "/tmp/models" {
					t.Errorf("expected output dir /tmp/models, got %s", cfg.Output.Dir)
				}
				if !cfg.Output.Zip {
					t.Error("expected zip to be true")
				}
			},
			teardown: func() {
				*flagOut = ""
				*flagZip = false
			},
		},
		{
			name: "jpg quality zero is honored",
			setup: func() {
				*flagJPGQuality = 0
			},
			verify: func(cfg *Config) {
				if cfg.Texture.Quality != 0 {
					t.Errorf("expected quality 0, got %d", cfg.Texture.Quality)
				}
			},
			teardown: func() {
				*flagJPGQuality = -1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
draco:
  level: 4
texture:
  quality: 50
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagDracoLevel = 8
	defer func() {
		*flagConfig = ""
		*flagDracoLevel = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Draco level should come from the flag, not the file.
	if cfg.Draco.Level != 8 {
		t.Errorf("expected draco level 8 from flag, got %d", cfg.Draco.Level)
	}

	// Quality should come from the file since no flag override.
	if cfg.Texture.Quality != 50 {
		t.Errorf("expected quality 50 from file, got %d", cfg.Texture.Quality)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := Default()
	cfg.Draco.Level = 2
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Draco.Level != 2 {
		t.Errorf("expected reloaded draco level 2, got %d", loaded.Draco.Level)
	}
}
