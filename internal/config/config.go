// Package config handles exporter configuration loading and management.
package config

// Config holds all exporter settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Draco   DracoConfig   `yaml:"draco"`
	Texture TextureConfig `yaml:"texture"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds output file settings.
type OutputConfig struct {
	Dir    string `yaml:"dir"`    // Directory for the document and texture side files
	Binary bool   `yaml:"binary"` // Write a binary .glb instead of text .gltf
	Zip    bool   `yaml:"zip"`    // Package the output into a zip archive
}

// DracoConfig holds geometry compression settings.
type DracoConfig struct {
	Enabled bool `yaml:"enabled"`
	Level   int  `yaml:"level"` // Compression aggressiveness 1-10, 7 is the balanced default
}

// TextureConfig holds texture re-encoding settings.
type TextureConfig struct {
	JPEG    bool `yaml:"jpeg"`    // Re-encode textures as JPEG instead of PNG
	Quality int  `yaml:"quality"` // JPEG quality 0-100
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:    ".",
			Binary: false,
			Zip:    false,
		},
		Draco: DracoConfig{
			Enabled: true,
			Level:   7,
		},
		Texture: TextureConfig{
			JPEG:    true,
			Quality: 100,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
