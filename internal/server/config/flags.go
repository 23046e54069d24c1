package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bijligrid/internal/flagx"
)

// parseFlags populates Config from command-line flags:
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-g string   gRPC health bind address
//	-d string   PostgreSQL DSN
//	-i int      health probe interval, seconds
//	-l string   log level
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "HTTP address and port")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "gRPC health address and port")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	probeInterval := fs.Int("i", int(cfg.HealthProbeInterval.Seconds()), "health probe interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HealthProbeInterval = time.Duration(*probeInterval) * time.Second
}
