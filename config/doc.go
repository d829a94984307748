// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment.
//
// Environment variables are mapped onto nested keys, so GEMINI_API_KEY fills
// gemini.api_key and SERVER_PORT fills server.port. Values from the
// environment win over the file.
//
//	var cfg AppConfig
//	if err := config.LoadConfig("audioviz", &cfg); err != nil { ... }
package config
