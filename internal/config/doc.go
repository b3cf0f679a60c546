// Package config provides centralized configuration for the dashboard
// server: HTTP server settings, logging, security, and the locations of
// the upstream data files.
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (FIDASH_* namespace, highest priority)
//	2. config.yaml / configs/config.yaml
//	3. Struct tag defaults (lowest priority)
//
// The package also carries the shared constants of the system: the fixed
// input file names produced by the upstream pipeline, the headline
// indicator codes, and the account-ownership target the forecasts are
// measured against.
package config
