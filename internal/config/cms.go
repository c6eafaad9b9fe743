package config

import (
	"strings"
	"sync"
)

type CMSConfig struct {
	URL   string
	Token string
}

var (
	cmsConfig *CMSConfig
	cmsOnce   sync.Once
)

func LoadCMSConfig() *CMSConfig {
	cmsOnce.Do(func() {
		cmsConfig = &CMSConfig{
			URL:   strings.TrimRight(getEnv("STRAPI_URL", ""), "/"),
			Token: getEnv("STRAPI_TOKEN", ""),
		}
	})
	return cmsConfig
}

// Enabled reports whether interview records live in the remote CMS instead of postgres.
func (c *CMSConfig) Enabled() bool {
	return c.URL != ""
}
