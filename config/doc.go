// Package config loads and validates service configuration.
//
// Configuration comes from a config.yml found in standard locations (or an
// explicit path), a .env file loaded via godotenv, and environment
// variables bound through Viper. Environment variables override file values
// using underscore-separated paths (e.g. ELEVATEAI_API_TOKEN).
package config
