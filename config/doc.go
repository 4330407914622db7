// Package config loads glass configuration from config.yml, .env files and
// the environment through viper and godotenv.
//
// Provider credentials follow the conventional variable names: OPENAI_API_KEY
// populates providers.openai.api_key, OLLAMA_BASE_URL populates
// providers.ollama.base_url, and so on.
//
//	cfg, err := config.Load(config.WithConfigFile("config.yml"))
//	opts := cfg.ProviderOptions("openai-glass") // falls back to the openai settings
package config
