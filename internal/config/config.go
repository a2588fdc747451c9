package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/S2G-Investments/headshot-processor/internal/constants"
	"github.com/S2G-Investments/headshot-processor/internal/detector"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Dirs     DirsConfig     `yaml:"dirs"`
	Detector DetectorConfig `yaml:"detector"`
	Crop     CropConfig     `yaml:"crop"`
	Output   OutputConfig   `yaml:"output"`
	Naming   NamingConfig   `yaml:"naming"`
	Log      LogConfig      `yaml:"log"`
}

type DirsConfig struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Reference string `yaml:"reference"` // already finalized headshots, only names are read
}

type DetectorConfig struct {
	Backend         string  `yaml:"backend"` // haar or pigo
	CascadePath     string  `yaml:"cascade_path"`
	PigoCascadePath string  `yaml:"pigo_cascade_path"`
	ScaleFactor     float64 `yaml:"scale_factor"`
	MinNeighbors    int     `yaml:"min_neighbors"`
	MinSize         int     `yaml:"min_size"`
	ShiftFactor     float64 `yaml:"shift_factor"`
	MinQuality      float64 `yaml:"min_quality"`
	IoUThreshold    float64 `yaml:"iou_threshold"`
}

// Params returns the detector parameters for the configured backend.
func (c DetectorConfig) Params() detector.Params {
	path := c.CascadePath
	if c.Backend == detector.BackendPigo {
		path = c.PigoCascadePath
	}
	return detector.Params{
		CascadePath:  path,
		ScaleFactor:  c.ScaleFactor,
		MinNeighbors: c.MinNeighbors,
		MinSize:      c.MinSize,
		ShiftFactor:  c.ShiftFactor,
		MinQuality:   c.MinQuality,
		IoUThreshold: c.IoUThreshold,
	}
}

type CropConfig struct {
	PaddingFactor float64 `yaml:"padding_factor"`
	ExtraMargin   int     `yaml:"extra_margin"` // pixels
	TargetWidth   int     `yaml:"target_width"`
}

type OutputConfig struct {
	JPEGQuality int  `yaml:"jpeg_quality"`
	Cleanup     bool `yaml:"cleanup"` // prune output files that also exist in the reference directory
}

type NamingConfig struct {
	FoldDiacritics bool `yaml:"fold_diacritics"`
}

type LogConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"` // console level, the log file always records debug
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Dirs: DirsConfig{
			Input:     constants.DefaultInputDir,
			Output:    constants.DefaultOutputDir,
			Reference: constants.DefaultReferenceDir,
		},
		Detector: DetectorConfig{
			Backend:         detector.BackendHaar,
			CascadePath:     constants.DefaultHaarCascadePath,
			PigoCascadePath: constants.DefaultPigoCascadePath,
			ScaleFactor:     constants.DefaultScaleFactor,
			MinNeighbors:    constants.DefaultMinNeighbors,
			MinSize:         constants.DefaultMinFaceSize,
			ShiftFactor:     constants.DefaultPigoShiftFactor,
			MinQuality:      constants.DefaultPigoMinQuality,
			IoUThreshold:    constants.DefaultPigoIoUThreshold,
		},
		Crop: CropConfig{
			PaddingFactor: constants.DefaultPaddingFactor,
			ExtraMargin:   constants.DefaultExtraMargin,
			TargetWidth:   constants.DefaultTargetWidth,
		},
		Output: OutputConfig{
			JPEGQuality: constants.DefaultJPEGQuality,
			Cleanup:     true,
		},
		Log: LogConfig{
			Dir:   constants.DefaultLogDir,
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path and
// HEADSHOTS_* environment variables, in that order of precedence (later wins).
// An empty path falls back to HEADSHOTS_CONFIG; a missing file is only an error when
// the path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("HEADSHOTS_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Dirs.Input = envString("HEADSHOTS_INPUT_DIR", c.Dirs.Input)
	c.Dirs.Output = envString("HEADSHOTS_OUTPUT_DIR", c.Dirs.Output)
	c.Dirs.Reference = envString("HEADSHOTS_REFERENCE_DIR", c.Dirs.Reference)

	c.Detector.Backend = envString("HEADSHOTS_DETECTOR", c.Detector.Backend)
	c.Detector.CascadePath = envString("HEADSHOTS_CASCADE_PATH", c.Detector.CascadePath)
	c.Detector.PigoCascadePath = envString("HEADSHOTS_PIGO_CASCADE_PATH", c.Detector.PigoCascadePath)

	c.Crop.TargetWidth = envInt("HEADSHOTS_TARGET_WIDTH", c.Crop.TargetWidth)
	c.Output.JPEGQuality = envInt("HEADSHOTS_JPEG_QUALITY", c.Output.JPEGQuality)
	c.Naming.FoldDiacritics = envBool("HEADSHOTS_FOLD_DIACRITICS", c.Naming.FoldDiacritics)

	c.Log.Dir = envString("HEADSHOTS_LOG_DIR", c.Log.Dir)
	c.Log.Level = envString("HEADSHOTS_LOG_LEVEL", c.Log.Level)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Dirs.Input) == "":
		return errors.New("input directory must be set")
	case strings.TrimSpace(c.Dirs.Output) == "":
		return errors.New("output directory must be set")
	case c.Detector.Backend != detector.BackendHaar && c.Detector.Backend != detector.BackendPigo:
		return fmt.Errorf("unknown detector backend %q (use %s or %s)", c.Detector.Backend, detector.BackendHaar, detector.BackendPigo)
	case c.Detector.ScaleFactor <= 1:
		return fmt.Errorf("detector scale factor must be greater than 1, got %v", c.Detector.ScaleFactor)
	case c.Detector.MinNeighbors < 0:
		return fmt.Errorf("detector min neighbors must not be negative, got %d", c.Detector.MinNeighbors)
	case c.Detector.MinSize <= 0:
		return fmt.Errorf("detector min size must be positive, got %d", c.Detector.MinSize)
	case c.Crop.PaddingFactor < 0:
		return fmt.Errorf("padding factor must not be negative, got %v", c.Crop.PaddingFactor)
	case c.Crop.ExtraMargin < 0:
		return fmt.Errorf("extra margin must not be negative, got %d", c.Crop.ExtraMargin)
	case c.Crop.TargetWidth <= 0:
		return fmt.Errorf("target width must be positive, got %d", c.Crop.TargetWidth)
	case c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100:
		return fmt.Errorf("jpeg quality must be between 1 and 100, got %d", c.Output.JPEGQuality)
	}
	return nil
}

// envString returns the trimmed value of key, or defaultVal when unset or blank.
func envString(key, defaultVal string) string {
	if s := strings.TrimSpace(os.Getenv(key)); s != "" {
		return s
	}
	return defaultVal
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return defaultVal
}
