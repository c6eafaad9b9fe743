package config

import (
	"sync"
	"time"
)

type WizardConfig struct {
	// Timeout bounds each upload, extraction and create call made by a wizard.
	Timeout    time.Duration
	SessionTTL time.Duration
}

var (
	wizardConfig *WizardConfig
	wizardOnce   sync.Once
)

func LoadWizardConfig() *WizardConfig {
	wizardOnce.Do(func() {
		wizardConfig = &WizardConfig{
			Timeout:    getEnvAsDuration("WIZARD_TIMEOUT", 90*time.Second),
			SessionTTL: getEnvAsDuration("WIZARD_SESSION_TTL", time.Hour),
		}
	})
	return wizardConfig
}
