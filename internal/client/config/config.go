package config

import "time"

// Config holds runtime settings for the BIJLI.GRID terminal client.
//
// Fields:
//   - DataDir: directory holding the local storage file.
//   - BackendURL: base URL of the backend HTTP API.
//   - HealthAddr: host:port of the backend gRPC health service ("" disables the online watcher).
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - WalletRPCURL: Ethereum JSON-RPC endpoint of the wallet provider ("" means no wallet).
//   - WalletPollInterval: how often the provider is polled for account and chain switches.
//   - DemoWallet: use the built-in in-memory wallet instead of WalletRPCURL.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	DataDir             string
	BackendURL          string
	HealthAddr          string
	OnlineCheckInterval time.Duration
	WalletRPCURL        string
	WalletPollInterval  time.Duration
	DemoWallet          bool
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = ".bijli"
	c.BackendURL = "http://127.0.0.1:5000"
	c.HealthAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.WalletRPCURL = ""
	c.WalletPollInterval = 2 * time.Second
	c.DemoWallet = false
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
