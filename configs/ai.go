package configs

// AIConfig configures the generative-model gateway. TimeoutSeconds was
// not present in the original deployment; calls had no upper bound and
// the default here is an added safety margin.
type AIConfig struct {
	GoogleAPIKey   string `yaml:"google_api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	CacheEnabled   bool   `yaml:"cache_enabled"`
	CacheTTLHours  int    `yaml:"cache_ttl_hours"`
}
