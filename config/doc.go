// Package config loads editor settings from a TOML file.
//
// Load falls back to defaults when the file does not exist, and for every
// field that is missing or empty. An explicit empty path means the default
// location, ~/.config/luminicad/config.toml.
//
// Example:
//
//	locale = "zh-CN"
//	history_limit = 50
//
//	[snap]
//	radius = 10
//	types = ["endpoint", "midpoint", "center"]
//
//	[view]
//	width = 1024
//	height = 768
//	scale = 20
//
//	[theme]
//	background = "#ffffff"
//	preview = "#0066cc"
package config
