package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a variant.
// Search order: customPath -> ~/.dino-runner/configs/<variant>.yaml ->
// ./configs/<variant>.yaml -> embedded default -> hard-coded default.
// Files are overlaid on the variant's defaults, so they may be partial.
func Load(variant, customPath string) (RunnerConfig, error) {
	base := baseConfig(variant)

	// Custom path errors are reported; the user asked for that file.
	if customPath != "" {
		cfg, err := overlayFile(base, customPath)
		if err != nil {
			return RunnerConfig{}, err
		}
		return cfg, cfg.Validate()
	}

	candidates := []string{
		userConfigPath(variant + ".yaml"),
		filepath.Join("configs", variant+".yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		cfg, err := overlayFile(base, path)
		if err != nil {
			continue
		}
		if cfg.Validate() == nil {
			return cfg, nil
		}
	}

	return base, base.Validate()
}

// baseConfig returns the embedded YAML for a variant, falling back to the
// hard-coded defaults if it is missing or broken.
func baseConfig(variant string) RunnerConfig {
	data, err := embeddedYAML(variant)
	if err != nil {
		return fallback(variant)
	}
	cfg := RunnerConfig{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fallback(variant)
	}
	return cfg
}

// overlayFile decodes the YAML at path on top of a copy of base.
func overlayFile(base RunnerConfig, path string) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg := base
	cfg.Kinds = append([]ObstacleKind(nil), base.Kinds...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is
// unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dino-runner", "configs", filename)
}
