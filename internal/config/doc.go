// Package config loads rmde settings.
//
// Settings come from three places, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. A configuration file, TOML or YAML by extension (Load)
//  3. RMDE_* environment variables (ApplyEnv)
//
// Example file:
//
//	[logging]
//	level = "debug"
//	file = "/tmp/rmde.log"
//
//	[files]
//	resolve_symlinks = true
//	permissions = "0600"
//
// # Sub-packages
//
//   - loader: file decoding (TOML, YAML) and environment lookup
package config
