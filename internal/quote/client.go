// Package quote proxies a random quote from a primary upstream, falling
// back to a second upstream with a different payload shape.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

const DefaultTimeout = 5 * time.Second

var (
	ErrUnavailable = errors.New("quote: no upstream available")
	errEmpty       = errors.New("quote: empty payload")
)

// Quote is the normalized shape returned to clients.
type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

type Config struct {
	PrimaryURL  string
	FallbackURL string
	Timeout     time.Duration
}

// Client is safe for concurrent use.
type Client struct {
	http     *http.Client
	primary  upstream
	fallback upstream
}

type upstream struct {
	url    string
	decode func(io.Reader) (Quote, error)
	cb     *gobreaker.CircuitBreaker
}

func NewClient(cfg Config, hc *http.Client) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if hc == nil {
		hc = &http.Client{}
	}
	// a caller-supplied client keeps its transport; the deadline is ours
	c := *hc
	c.Timeout = cfg.Timeout

	return &Client{
		http:     &c,
		primary:  upstream{url: cfg.PrimaryURL, decode: decodePrimary, cb: newBreaker("quote-primary")},
		fallback: upstream{url: cfg.FallbackURL, decode: decodeFallback, cb: newBreaker("quote-fallback")},
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 100,
		Interval:    5 * time.Second,
		Timeout:     3 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		// a client hanging up says nothing about the upstream
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// Random asks the primary upstream and, if that fails for any reason,
// the fallback exactly once.
func (c *Client) Random(ctx context.Context) (Quote, error) {
	q, err := c.fetch(ctx, c.primary)
	if err == nil {
		return q, nil
	}
	slog.Warn("Primary quote upstream failed", "url", c.primary.url, "error", err)

	q, ferr := c.fetch(ctx, c.fallback)
	if ferr == nil {
		return q, nil
	}
	slog.Error("Fallback quote upstream failed", "url", c.fallback.url, "error", ferr)
	return Quote{}, fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(err, ferr))
}

func (c *Client) fetch(ctx context.Context, u upstream) (Quote, error) {
	if u.url == "" {
		return Quote{}, errors.New("upstream not configured")
	}
	res, err := u.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return u.decode(resp.Body)
	})
	if err != nil {
		return Quote{}, err
	}
	return res.(Quote), nil
}

// decodePrimary reads {"content": ..., "author": ...}.
func decodePrimary(r io.Reader) (Quote, error) {
	var q Quote
	if err := json.NewDecoder(r).Decode(&q); err != nil {
		return Quote{}, fmt.Errorf("decode quote: %w", err)
	}
	if q.Content == "" {
		return Quote{}, errEmpty
	}
	return q, nil
}

// decodeFallback reads [{"q": ..., "a": ...}].
func decodeFallback(r io.Reader) (Quote, error) {
	var items []struct {
		Q string `json:"q"`
		A string `json:"a"`
	}
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return Quote{}, fmt.Errorf("decode quote: %w", err)
	}
	if len(items) == 0 || items[0].Q == "" {
		return Quote{}, errEmpty
	}
	return Quote{Content: items[0].Q, Author: items[0].A}, nil
}
