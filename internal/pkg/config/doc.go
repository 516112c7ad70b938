// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file through viper, may be overridden by
// STOREFRONT_* environment variables (an optional .env file is loaded first)
// and are validated before use. Both the REST API and the CLI load their
// configuration through this package.
package config
