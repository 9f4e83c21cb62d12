// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// generatedSecretSize is the number of random bytes used for a session secret
// when none is configured.
const generatedSecretSize = 24

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.App.SessionProtection {
	case SessionProtectionStrong, SessionProtectionBasic, SessionProtectionNone:
	default:
		return fmt.Errorf("%w: unknown session protection %q", ErrInvalidAppConfigs, cfg.App.SessionProtection)
	}

	if cfg.App.SessionSecret == "" {
		return fmt.Errorf("%w: empty session secret", ErrInvalidAppConfigs)
	}

	if cfg.App.SessionDuration <= 0 {
		return fmt.Errorf("%w: session duration must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty HTTP address", ErrInvalidServerConfigs)
	}

	if cfg.Server.RequestTimeout <= 0 || cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Server.LoginRate <= 0 || cfg.Server.LoginBurst <= 0 {
		return fmt.Errorf("%w: login rate and burst must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Workers.LimiterSweepInterval <= 0 {
		return fmt.Errorf("%w: limiter sweep interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}

// generateMissingSecrets fills an empty session secret with random bytes.
func (cfg *StructuredConfig) generateMissingSecrets() error {
	if cfg.App.SessionSecret != "" {
		return nil
	}

	secret := make([]byte, generatedSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("error generating session secret: %w", err)
	}

	cfg.App.SessionSecret = hex.EncodeToString(secret)
	cfg.App.SessionSecretGenerated = true
	return nil
}
