package config

import (
	"log"
	"strings"
	"sync"
)

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	BaseURL string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := getEnv("APP_ENV", "")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		port := getEnv("APP_PORT", ":8080")
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		appConfig = &AppConfig{
			Name:    getEnv("APP_NAME", "NeuraView API"),
			Env:     env,
			Port:    port,
			BaseURL: strings.TrimRight(getEnv("APP_URL", "http://localhost"+port), "/"),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
