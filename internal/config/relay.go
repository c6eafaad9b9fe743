package config

import (
	"sync"
	"time"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// RelayConfig configures the upstream model behind the resume extractor.
// APIURL must accept OpenAI-style chat completion requests.
type RelayConfig struct {
	Provider string
	APIURL   string
	APIToken string
	Model    string
	Timeout  time.Duration
}

var (
	relayConfig *RelayConfig
	relayOnce   sync.Once
)

func LoadRelayConfig() *RelayConfig {
	relayOnce.Do(func() {
		relayConfig = &RelayConfig{
			Provider: getEnv("AI_PROVIDER", ProviderOpenAI),
			APIURL:   getEnv("AI_API_URL", "https://text.pollinations.ai/openai"),
			APIToken: getEnv("AI_API_TOKEN", ""),
			Model:    getEnv("AI_MODEL", "mistral"),
			Timeout:  getEnvAsDuration("AI_TIMEOUT", 60*time.Second),
		}
	})
	return relayConfig
}
