package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bijligrid/internal/flagx"
	"github.com/dmitrijs2005/bijligrid/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from a zero value.
type JsonConfig struct {
	DataDir             *string         `json:"data_dir"`
	BackendURL          *string         `json:"backend_url"`
	HealthAddr          *string         `json:"health_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	WalletRPCURL        *string         `json:"wallet_rpc_url"`
	WalletPollInterval  *timex.Duration `json:"wallet_poll_interval"`
	DemoWallet          *bool           `json:"demo_wallet"`
	LogLevel            *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Panics on read or
// unmarshal errors.
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

	setIf(&cfg.DataDir, jc.DataDir)
	setIf(&cfg.BackendURL, jc.BackendURL)
	setIf(&cfg.HealthAddr, jc.HealthAddr)
	setIf(&cfg.WalletRPCURL, jc.WalletRPCURL)
	setIf(&cfg.DemoWallet, jc.DemoWallet)
	setIf(&cfg.LogLevel, jc.LogLevel)
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.WalletPollInterval != nil {
		cfg.WalletPollInterval = jc.WalletPollInterval.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
