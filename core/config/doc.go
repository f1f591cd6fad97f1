// Package config provides configuration management for schemadiff.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of the
// section types.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit, metrics)
//   - Database: MySQL connection used for live schema capture
//   - Storage: S3/MinIO credentials and the snapshot bucket
//   - Log: Logging level and format
//   - Compare: default comparison options (COMPARE_CASE_SENSITIVE, ...)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	policy, err := omf.NewNormalized(cfg.Compare.Options())
package config
