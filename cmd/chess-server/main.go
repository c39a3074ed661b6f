// chess-server runs games over HTTP and websockets, optionally with a
// remote engine playing one side.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/server"
)

const programVersion = "0.1.0"

var (
	addr             = flag.String("addr", ":8080", "Listen address")
	allowOrigins     = flag.String("origins", "*", "Allowed CORS and websocket origins, comma separated")
	botURL           = flag.String("bot-url", config.NewBotConfig().BaseURL, "Move service base URL")
	botDepth         = flag.Int("depth", 10, "Default engine search depth (1-15)")
	botTimeout       = flag.Duration("bot-timeout", 10*time.Second, "Maximum wait for one engine request")
	promotionTimeout = flag.Duration("promotion-timeout", 0, "Maximum wait for a promotion choice (0 = no limit)")
	logFile          = flag.String("l", "", "Write diagnostics to this log file")
	verbose          = flag.Bool("v", false, "Log every request and move")
	quiet            = flag.Bool("s", false, "Silent mode")
	version          = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("chess-server version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := buildConfig()
	if *logFile != "" {
		file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		defer file.Close()
		cfg.LogFile = file
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := server.New(cfg)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cfg.Logf(1, "Shutting down\n")
		if err := srv.Shutdown(); err != nil {
			cfg.Logf(1, "Shutdown: %v\n", err)
		}
	}()

	if err := srv.Listen(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildConfig turns the parsed flags into a configuration.
func buildConfig() *config.Config {
	b := config.NewConfigBuilder().
		WithServerAddr(*addr).
		WithAllowOrigins(*allowOrigins).
		WithBot(*botURL, *botDepth).
		WithBotTimeout(*botTimeout).
		WithPromotionTimeout(*promotionTimeout)
	switch {
	case *quiet:
		b.WithVerbosity(0)
	case *verbose:
		b.WithVerbosity(2)
	}
	return b.Build()
}
