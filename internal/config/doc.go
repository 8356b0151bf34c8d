// Package config loads foreport's settings from .foreport.yaml.
//
// # Configuration Precedence
//
// Values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--reports-dir, --output-dir, --theme, etc.)
//  2. Environment variables (FOREPORT_REPORTS_DIR, FOREPORT_OUTPUT_DIR, NO_COLOR, ...)
//  3. YAML config file (.foreport.yaml in the working directory or
//     ~/.config/foreport/.foreport.yaml)
//  4. Hardcoded defaults
//
// Flags and environment variables are bound by the CLI; this package covers
// the file and the defaults.
//
// # Classification
//
// The classification block replaces the built-in keyword table used to rate
// bugs:
//
//	classification:
//	  rules:
//	    - keywords: [SECURITY, ACCESSIBILITY]
//	      priority: high
//	      severity: critical
//	  default:
//	    priority: medium
//	    severity: major
//
// Keywords match case-sensitively against the suite path; the first matching
// rule wins.
package config
