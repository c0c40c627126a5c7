// Package config loads runtime configuration for the Tshwane Transit CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. TRANSIT_* environment variables (see parseEnv).
//  3. Optional JSON file selected via flags: -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-d string   local database file name
//	-i int      bus-location poll interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000/api",
//	  "request_timeout": "15s",
//	  "database_file": "transit.db",
//	  "poll_interval": "10s",
//	  "plan_radius_km": 2,
//	  "stop_radius_m": 100
//	}
//
// Primary API
//
//   - type Config                     — runtime settings for the client
//   - func LoadConfig() *Config      — builds Config by layering all sources
//   - func (*Config) LoadDefaults()  — sets sensible defaults
package config
