package configs

import (
	"flag"
	"os"

	"github.com/soleverett/focusroom/internal/infrastructure/env"
)

// DetermineConfigPath resolves the config file location from the --config
// flag, the FOCUSROOM_CONFIG env var, or a set of conventional candidate
// paths. An empty result means "run on built-in defaults".
func DetermineConfigPath() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = env.GetString("FOCUSROOM_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"/etc/focusroom/config.yaml",
			"/app/config.yaml", // common in Docker
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	return configPath
}
