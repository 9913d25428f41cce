package config

import (
	"os"
	"path/filepath"
	"strings"

	"hemosim/internal/distribution"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sources             distribution.Sources
	Colors              map[distribution.BloodType]string
	DataPath            string
	LogDir              string
	Workers             int
	ClampTail           bool
	EnableMermaidCharts bool
}

// Default display colors per blood type.
var defaultColors = map[distribution.BloodType]string{
	distribution.TypeA:  "#1f77b4",
	distribution.TypeB:  "#ff7f0e",
	distribution.TypeAB: "#d62728",
	distribution.TypeO:  "#2ca02c",
}

// Load layers the configuration: built-in defaults, then hemosim.yaml
// (path overridable via HEMOSIM_CONFIG), then HEMOSIM_* environment
// variables. A .env next to the binary or in the working directory is
// read first so MCP hosts can configure the server without a shell.
func Load() (*AppConfig, error) {
	// 1. Load .env from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded environment from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	k := koanf.New(".")

	defaults := map[string]interface{}{
		"data.path":             defaultDataPath(exeDir),
		"sources.a":             "Prob A.xlsx",
		"sources.b":             "Prob B.xlsx",
		"sources.ab":            "Prob AB.xlsx",
		"sources.o":             "Prob O.xlsx",
		"colors.a":              defaultColors[distribution.TypeA],
		"colors.b":              defaultColors[distribution.TypeB],
		"colors.ab":             defaultColors[distribution.TypeAB],
		"colors.o":              defaultColors[distribution.TypeO],
		"simulation.workers":    1,
		"simulation.clamp_tail": false,
		"charts.mermaid":        false,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, err
	}

	cfgFile := os.Getenv("HEMOSIM_CONFIG")
	if cfgFile == "" {
		cfgFile = "hemosim.yaml"
	}
	if _, err := os.Stat(cfgFile); err == nil {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			log.Warn().Err(err).Str("path", cfgFile).Msg("Failed to parse config file, continuing with defaults")
		} else {
			log.Debug().Str("path", cfgFile).Msg("Loaded configuration file")
		}
	}

	// HEMOSIM_SOURCES_AB=... maps to sources.ab; a double underscore keeps
	// a literal underscore in the key (HEMOSIM_SIMULATION__CLAMP_TAIL).
	if err := k.Load(env.Provider("HEMOSIM_", ".", envKey), nil); err != nil {
		return nil, err
	}

	dataPath := k.String("data.path")
	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	cfg := &AppConfig{
		Sources: distribution.Sources{
			distribution.TypeA:  resolvePath(dataPath, k.String("sources.a")),
			distribution.TypeB:  resolvePath(dataPath, k.String("sources.b")),
			distribution.TypeAB: resolvePath(dataPath, k.String("sources.ab")),
			distribution.TypeO:  resolvePath(dataPath, k.String("sources.o")),
		},
		Colors: map[distribution.BloodType]string{
			distribution.TypeA:  k.String("colors.a"),
			distribution.TypeB:  k.String("colors.b"),
			distribution.TypeAB: k.String("colors.ab"),
			distribution.TypeO:  k.String("colors.o"),
		},
		DataPath:            dataPath,
		LogDir:              logDir,
		Workers:             k.Int("simulation.workers"),
		ClampTail:           k.Bool("simulation.clamp_tail"),
		EnableMermaidCharts: k.Bool("charts.mermaid"),
	}

	return cfg, nil
}

// envKey translates HEMOSIM_SECTION_KEY into section.key, preserving
// literal underscores written as a double underscore.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "HEMOSIM_"))
	s = strings.ReplaceAll(s, "__", "\x00")
	s = strings.ReplaceAll(s, "_", ".")
	return strings.ReplaceAll(s, "\x00", "_")
}

func defaultDataPath(exeDir string) string {
	if exeDir != "" {
		return exeDir
	}
	return "."
}

// resolvePath anchors relative source paths at the data directory so the
// workbooks can live next to the binary.
func resolvePath(dataPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dataPath, p)
}
