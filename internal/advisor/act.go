package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/talgya/macro-sim/internal/economy"
)

// Actor submits turns, and optionally resets, through the API.
type Actor struct {
	BaseURL    string
	AdminKey   string // Sent on reset when set
	HTTPClient *http.Client
}

// NewActor creates an Actor targeting the given API base URL.
func NewActor(baseURL, adminKey string) *Actor {
	return &Actor{
		BaseURL:  baseURL,
		AdminKey: adminKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Act sends the action to POST /api/v1/turn and returns the new snapshot.
func (a *Actor) Act(action economy.Action) (economy.Snapshot, error) {
	body, err := json.Marshal(action)
	if err != nil {
		return economy.Snapshot{}, fmt.Errorf("marshal action: %w", err)
	}

	var snap economy.Snapshot
	if err := a.post("/api/v1/turn", body, &snap); err != nil {
		return economy.Snapshot{}, err
	}
	return snap, nil
}

// Reset starts a new game via POST /api/v1/reset.
func (a *Actor) Reset() (economy.Snapshot, error) {
	var result struct {
		Message string           `json:"message"`
		Status  economy.Snapshot `json:"status"`
	}
	if err := a.post("/api/v1/reset", nil, &result); err != nil {
		return economy.Snapshot{}, err
	}
	return result.Status, nil
}

func (a *Actor) post(path string, body []byte, target any) error {
	req, err := http.NewRequest(http.MethodPost, a.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.AdminKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.AdminKey)
	}

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST %s failed (%d): %s", path, resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
