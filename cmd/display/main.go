// Kitchen display service: accepts order snapshots from the lane and
// streams them to connected kitchen terminals over websocket.
package main

import (
	"os"

	cli "github.com/spf13/pflag"

	"github.com/Erunixz/thru.ai/internal/config"
	"github.com/Erunixz/thru.ai/internal/log"
	"github.com/Erunixz/thru.ai/pkg/relay"
)

func main() {
	envFile := cli.StringP("env", "e", ".env", "env file path")
	addr := cli.StringP("addr", "a", "", "listen address (overrides DISPLAY_ADDR)")
	logLevel := cli.StringP("log", "l", "", "log level: debug, info, warn, error")
	cli.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Init("info")
		log.Error("configuration failed", "error", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *addr != "" {
		cfg.DisplayAddr = *addr
	}
	log.Init(cfg.LogLevel)
	logger := log.L()

	srv := relay.NewServer(logger)
	logger.Info("display listening", "addr", cfg.DisplayAddr)
	if err := srv.Listen(cfg.DisplayAddr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
