// Command advisor plays the simulator over its HTTP API.
// It observes the game, decides a policy with fixed rules, and submits the
// turn, until the game ends.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/talgya/macro-sim/internal/advisor"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", "error", err)
	}

	// Configuration from environment.
	apiURL := envOrDefault("ECONSIM_API_URL", "http://localhost:8000")
	adminKey := os.Getenv("ECONSIM_ADMIN_KEY")
	intervalSec := envIntOrDefault("ADVISOR_INTERVAL", 5)
	resetFirst := os.Getenv("ADVISOR_RESET") == "1"

	interval := time.Duration(intervalSec) * time.Second

	slog.Info("advisor starting",
		"api_url", apiURL,
		"interval", interval,
		"reset", resetFirst,
	)

	observer := advisor.NewObserver(apiURL)
	actor := advisor.NewActor(apiURL, adminKey)

	slog.Info("waiting for simulator API...")
	waitForAPI(apiURL)

	if resetFirst {
		snap, err := actor.Reset()
		if err != nil {
			slog.Error("reset failed", "error", err)
			os.Exit(1)
		}
		slog.Info("new game", "game_id", snap.GameID)
	}

	// Run first cycle immediately.
	if done := runCycle(observer, actor); done {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			if done := runCycle(observer, actor); done {
				return
			}
		case sig := <-sigCh:
			slog.Info("received signal, shutting down", "signal", sig)
			fmt.Println("Advisor stopped.")
			return
		}
	}
}

// runCycle executes one observe → decide → act cycle and reports whether the
// game has ended.
func runCycle(observer *advisor.Observer, actor *advisor.Actor) bool {
	snap, err := observer.Observe()
	if err != nil {
		slog.Error("observation failed", "error", err)
		return false
	}
	if snap.Ended() {
		slog.Info("game over",
			"turn", snap.Turn,
			"victory", snap.IsVictory,
			"approval", snap.ApprovalRating,
		)
		return true
	}

	decision := advisor.Decide(snap)
	slog.Info("decision made",
		"turn", snap.Turn,
		"crisis", decision.Health.CrisisLevel,
		"rationale", decision.Rationale,
	)

	next, err := actor.Act(decision.Action)
	if err != nil {
		slog.Error("turn failed", "error", err)
		return false
	}

	slog.Info("turn played",
		"turn", next.Turn,
		"gdp", next.GDP,
		"inflation", next.InflationRate,
		"approval", next.ApprovalRating,
		"budget", next.Budget,
	)
	return false
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

// waitForAPI polls the status endpoint with exponential backoff until it
// responds. Exits after 5 minutes if the API never becomes ready.
func waitForAPI(apiURL string) {
	backoff := 2 * time.Second
	maxBackoff := 30 * time.Second
	deadline := time.Now().Add(5 * time.Minute)

	for {
		resp, err := http.Get(apiURL + "/api/v1/status")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				slog.Info("simulator API is ready")
				return
			}
		}
		if time.Now().After(deadline) {
			slog.Error("simulator API did not become ready within 5 minutes")
			os.Exit(1)
		}
		slog.Info("simulator not ready, retrying...", "backoff", backoff)
		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
