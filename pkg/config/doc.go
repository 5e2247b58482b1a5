// Package config loads application configuration from environment
// variables into tagged structs.
//
// Each configuration type is parsed once per process and cached, so
// independent components can load the same config without re-reading
// the environment. A local .env file, when present, is loaded before
// the first parse.
//
// Example:
//
//	type ServerConfig struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
package config
