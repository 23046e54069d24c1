package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bijligrid/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b", "-h", "-i", "-w", "-p", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.BackendURL, "b", cfg.BackendURL, "backend HTTP base URL")
	fs.StringVar(&cfg.HealthAddr, "h", cfg.HealthAddr, "backend gRPC health address")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.WalletRPCURL, "w", cfg.WalletRPCURL, "wallet JSON-RPC URL")
	walletPollInterval := fs.Int("p", int(cfg.WalletPollInterval.Seconds()), "wallet poll interval (in seconds)")
	fs.BoolVar(&cfg.DemoWallet, "m", cfg.DemoWallet, "use the in-memory demo wallet")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.WalletPollInterval = time.Duration(*walletPollInterval) * time.Second
}
