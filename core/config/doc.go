// Package config provides configuration management for the node manager.
//
// It utilizes Viper for loading configuration from environment variables
// and a local .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Etcd: key-value store gateway endpoint, namespace and timeout
//   - Storage: S3/MinIO credentials and manifest bucket settings
//   - Database: audit trail connection details
//   - Log: logging level, format and optional file output
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Etcd.Endpoint)
package config
