package config

import (
	"fmt"
	"os"

	"github.com/data-respons-solutions/nvram/internal/infra/confloader"
)

// EnvConfigFile names the environment variable holding the config file path.
const EnvConfigFile = "NVRAM_CONFIG"

// Load layers the YAML file at path, NVRAM_* environment variables and
// overrides over Default. Overrides are dotted keys such as "interface";
// empty strings are ignored. An empty path falls back to $NVRAM_CONFIG;
// without either only defaults, environment and overrides apply.
func Load(path string, overrides map[string]any) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	cfg := Default()
	l := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
	)
	if err := l.Load(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
