package main

import (
	"testing"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func TestBuildConfig(t *testing.T) {
	cfg := buildConfig()
	testutil.AssertNoError(t, cfg.Validate())
	testutil.AssertEqual(t, cfg.Server.Addr, ":8080")
	testutil.AssertEqual(t, cfg.Server.AllowOrigins, "*")
	testutil.AssertEqual(t, cfg.Bot.Depth, 10)
	testutil.AssertEqual(t, cfg.Bot.Timeout, 10*time.Second)
	testutil.AssertEqual(t, cfg.Game.PromotionTimeout, time.Duration(0))
	testutil.AssertEqual(t, cfg.Verbosity, 1)
}
