package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bijligrid/internal/flagx"
	"github.com/dmitrijs2005/bijligrid/internal/timex"
)

type JsonConfig struct {
	HTTPAddr            *string         `json:"http_addr"`
	GRPCAddr            *string         `json:"grpc_addr"`
	DatabaseDSN         *string         `json:"database_dsn"`
	HealthProbeInterval *timex.Duration `json:"health_probe_interval"`
	LogLevel            *string         `json:"log_level"`
}

// parseJson overlays Config with the JSON file named by -c or -config.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile()
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

	setIf(&cfg.HTTPAddr, jc.HTTPAddr)
	setIf(&cfg.GRPCAddr, jc.GRPCAddr)
	setIf(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setIf(&cfg.LogLevel, jc.LogLevel)
	if jc.HealthProbeInterval != nil {
		cfg.HealthProbeInterval = jc.HealthProbeInterval.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
