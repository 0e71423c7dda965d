// Package config provides configuration loading and validation for the
// endpoints host application.
//
// It uses Viper to load configuration from a config.yml, a .env file,
// environment variables and command-line flags, in that order of precedence
// (later sources win).
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("endpoints", &cfg, config.WithFlags(flags))
//
// Environment variables are bound under the nesting variants of their name,
// so ENDPOINTS_BACKEND fills both "endpoints_backend" and "endpoints.backend".
//
// Credentials for the SDK-only client are resolved separately by
// ResolveInference, which reads <PROVIDER>_INFERENCE_ENDPOINT and
// <PROVIDER>_API_KEY once so the caller can inject them.
package config
