// Package entropy provides the random sources behind the simulator's noise terms.
// The engine only ever sees a Source, so tests can swap in a fixed sequence.
package entropy

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	mrand "math/rand"
	"net/http"
	"sync"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Source yields uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

// Source kinds accepted by New.
const (
	KindSeeded    = "seeded"
	KindCrypto    = "crypto"
	KindSimplex   = "simplex"
	KindRandomOrg = "randomorg"
)

// New builds a Source of the given kind. A zero seed picks one from the clock.
func New(kind string, seed int64, apiKey string) (Source, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	switch kind {
	case "", KindSeeded:
		return NewSeeded(seed), nil
	case KindCrypto:
		return Crypto{}, nil
	case KindSimplex:
		return NewSimplex(seed), nil
	case KindRandomOrg:
		c := NewClient(apiKey)
		if c == nil {
			return nil, fmt.Errorf("noise source %q requires a random.org api key", kind)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown noise source %q", kind)
	}
}

// Uniform returns a value in [-amplitude, amplitude).
func Uniform(src Source, amplitude float64) float64 {
	return (src.Float64()*2 - 1) * amplitude
}

// Seeded is a reproducible math/rand source. Not safe for concurrent use.
type Seeded struct {
	rng *mrand.Rand
}

// NewSeeded creates a deterministic source.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: mrand.New(mrand.NewSource(seed))}
}

// Float64 implements Source.
func (s *Seeded) Float64() float64 {
	return s.rng.Float64()
}

// Crypto draws from crypto/rand.
type Crypto struct{}

// Float64 implements Source.
func (Crypto) Float64() float64 {
	return cryptoRandFloat()
}

// Simplex walks a 1-D line through simplex noise, so consecutive draws are
// correlated the way a business cycle is rather than independent.
type Simplex struct {
	noise opensimplex.Noise
	step  float64
	t     float64
}

// NewSimplex creates a simplex-noise source.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{noise: opensimplex.NewNormalized(seed), step: 0.37}
}

// Float64 implements Source.
func (s *Simplex) Float64() float64 {
	v := s.noise.Eval2(s.t, 0)
	s.t += s.step
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}

// Fixed replays a fixed sequence, cycling when exhausted. An empty Fixed
// always returns 0.5, which makes every Uniform term zero.
type Fixed struct {
	Values []float64
	next   int
}

// Float64 implements Source.
func (f *Fixed) Float64() float64 {
	if len(f.Values) == 0 {
		return 0.5
	}
	v := f.Values[f.next%len(f.Values)]
	f.next++
	return v
}

// Client provides true random numbers from random.org with a local pool.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client

	mu      sync.Mutex
	pool    []float64
	retryAt time.Time // No refills before this after a failure
}

// NewClient creates a random.org client. Returns nil if apiKey is empty.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: "https://api.random.org/json-rpc/4/invoke",
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Float64 returns a random float64 in [0, 1). Uses the pool, refilling from
// random.org when low. Falls back to crypto/rand on API failure.
func (c *Client) Float64() float64 {
	if c == nil {
		return cryptoRandFloat()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pool) < 10 && time.Now().After(c.retryAt) {
		if !c.refill() {
			c.retryAt = time.Now().Add(time.Minute)
		}
	}

	if len(c.pool) == 0 {
		return cryptoRandFloat()
	}

	val := c.pool[0]
	c.pool = c.pool[1:]
	return val
}

func (c *Client) refill() bool {
	req := map[string]any{
		"jsonrpc": "2.0",
		"method":  "generateDecimalFractions",
		"params": map[string]any{
			"apiKey":        c.apiKey,
			"n":             100,
			"decimalPlaces": 6,
		},
		"id": 1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		slog.Debug("random.org marshal failed", "error", err)
		return false
	}

	resp, err := c.client.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		slog.Debug("random.org fetch failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Debug("random.org read failed", "error", err)
		return false
	}

	var result struct {
		Result struct {
			Random struct {
				Data []float64 `json:"data"`
			} `json:"random"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		slog.Debug("random.org parse failed", "error", err)
		return false
	}

	if result.Error != nil {
		slog.Debug("random.org API error", "error", result.Error.Message)
		return false
	}

	c.pool = append(c.pool, result.Result.Random.Data...)
	slog.Debug("random.org pool refilled", "count", len(result.Result.Random.Data))
	return len(result.Result.Random.Data) > 0
}

// cryptoRandFloat generates a random float64 using crypto/rand as fallback.
func cryptoRandFloat() float64 {
	var buf [8]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}
