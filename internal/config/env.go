package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the APP_*, STORAGE_*, SERVER_* and WORKERS_*
// variables and CONFIG. Unset variables leave fields at their zero value so
// that the merge keeps earlier sources.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
