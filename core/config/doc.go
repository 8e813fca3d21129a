// Package config provides configuration management for the development server.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with defaults taken from struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (host, port, root directory, isolation headers)
//   - Log: Logging level and format
//
// Command-line flags on individual commands override the loaded values when
// explicitly set, so the precedence is flags > environment > .env > defaults.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
