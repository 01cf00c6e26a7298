package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays environment variables onto the config. Variables that are
// unset leave the current value in place, so defaults survive.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
