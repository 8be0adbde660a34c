// Package config loads, validates, and normalizes reelsmith configuration.
//
// Configuration lives in a TOML file (default ~/.config/reelsmith/config.toml,
// or reelsmith.toml in the working directory). Load applies defaults, expands
// ~ in path fields, and rejects unusable values so the rest of the system can
// trust every field without re-checking.
package config
