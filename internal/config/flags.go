package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagOut        = flag.String("out", "", "Output directory for document and textures")
	flagBinary     = flag.Bool("binary", false, "Write a binary .glb container")
	flagZip        = flag.Bool("zip", false, "Package output into a zip archive")
	flagNoDraco    = flag.Bool("no-draco", false, "Disable Draco geometry compression")
	flagDracoLevel = flag.Int("draco-level", 0, "Draco compression level 1-10")
	flagPNG        = flag.Bool("png", false, "Re-encode textures as PNG instead of JPEG")
	flagJPGQuality = flag.Int("jpg-quality", -1, "JPEG quality 0-100")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagBinary {
		cfg.Output.Binary = true
	}
	if *flagZip {
		cfg.Output.Zip = true
	}
	if *flagNoDraco {
		cfg.Draco.Enabled = false
	}
	if *flagDracoLevel > 0 {
		cfg.Draco.Level = *flagDracoLevel
	}
	if *flagPNG {
		cfg.Texture.JPEG = false
	}
	if *flagJPGQuality >= 0 {
		cfg.Texture.Quality = *flagJPGQuality
	}
}
