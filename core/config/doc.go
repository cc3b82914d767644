// Package config provides configuration management for the remote loader.
//
// It utilizes Viper for loading configuration from an optional config.yaml,
// environment variables and a .env file (godotenv). Defaults are declared on
// the partial configuration structs with `default` tags and registered by
// reflection, so every key can be overridden through the environment
// (SERVER_PORT -> server.port, LOADER_TIMEOUT_MS -> loader.timeout_ms).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and service name
//   - Log: level and format
//   - Storage: MinIO credentials and the bucket remotes are published to
//   - Database: optional remote catalogue (mysql or sqlite)
//   - Loader: manifest path, fallback stylesheet, timeout and export name
//   - Fetch: HTTP client timeouts and body cap
//   - Script: entry script container name, size cap and execution budget
//   - Remotes: remotes declared in config.yaml
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
