package config

import (
	"encoding/json"
	"os"

	"github.com/GiftMothusi/tshwane-transit-cli/internal/flagx"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "15s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabaseFile   string         `json:"database_file"`
	PollInterval   timex.Duration `json:"poll_interval"`
	PlanRadiusKm   float64        `json:"plan_radius_km"`
	StopRadiusM    float64        `json:"stop_radius_m"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags (via
// flagx.JsonConfigFlags); if neither is set, nothing is loaded. Fields
// absent from the file keep their current values. Read or unmarshal errors
// panic, since a config file that exists but cannot be used is not
// something to continue past.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabaseFile != "" {
		cfg.DatabaseFile = jc.DatabaseFile
	}
	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = jc.PollInterval.Duration
	}
	if jc.PlanRadiusKm != 0 {
		cfg.PlanRadiusKm = jc.PlanRadiusKm
	}
	if jc.StopRadiusM != 0 {
		cfg.StopRadiusM = jc.StopRadiusM
	}
}
