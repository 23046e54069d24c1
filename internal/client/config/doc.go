// Package config loads runtime configuration for the BIJLI.GRID client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory for the local storage file
//	-b string   backend HTTP base URL
//	-h string   backend gRPC health address ("" disables the online watcher)
//	-i int      online status check interval (seconds)
//	-w string   wallet JSON-RPC URL
//	-p int      wallet poll interval (seconds)
//	-m          use the in-memory demo wallet
//	-l string   log level
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds. Keys that are absent keep their earlier value:
//
//	{
//	  "data_dir": ".bijli",
//	  "backend_url": "http://127.0.0.1:5000",
//	  "health_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "wallet_rpc_url": "http://127.0.0.1:8545",
//	  "wallet_poll_interval": "2s",
//	  "demo_wallet": false,
//	  "log_level": "info"
//	}
package config
