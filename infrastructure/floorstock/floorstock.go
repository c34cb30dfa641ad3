// Package floorstock classifies part numbers against the external floor
// stock lookup service. Floor stock parts live at a fixed shared location
// instead of a per-workstation bin, and their label quantity field is
// replaced by that location code.
package floorstock

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Result is the outcome of one lookup. The zero value means "not floor
// stock", which is also what every failure resolves to.
type Result struct {
	FloorStock bool
	Location   string
}

// QuantityOverride returns the quantity text printed for a floor stock
// part, or "" when the part is not floor stock.
func (r Result) QuantityOverride() string {
	if !r.FloorStock || strings.TrimSpace(r.Location) == "" {
		return ""
	}
	return "FS-" + strings.TrimSpace(r.Location)
}

// Resolver classifies a part number. Implementations never return an
// error: a failed lookup resolves to the zero Result so callers stay
// responsive (fail open).
type Resolver interface {
	Lookup(ctx context.Context, partNumber string) Result
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, partNumber string) Result

func (f ResolverFunc) Lookup(ctx context.Context, partNumber string) Result {
	return f(ctx, partNumber)
}

// Client resolves part numbers against the lookup service over HTTP.
// Each call issues a fresh request; results are never cached.
type Client struct {
	url    string
	client *http.Client
}

// NewClient builds a Client for the given lookup endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type lookupRequest struct {
	PartNumber string `json:"part_number"`
}

type lookupResponse struct {
	IsFloorStock bool   `json:"is_floor_stock"`
	Location     string `json:"location"`
}

// Lookup queries the service for one part number. Transport errors,
// non-2xx responses and undecodable bodies all resolve to "not floor
// stock" with a warning log.
func (c *Client) Lookup(ctx context.Context, partNumber string) Result {
	partNumber = strings.TrimSpace(partNumber)
	if c == nil || c.url == "" || partNumber == "" {
		return Result{}
	}

	body, err := json.Marshal(lookupRequest{PartNumber: partNumber})
	if err != nil {
		slog.Warn("floor stock lookup encode failed", slog.String("part_number", partNumber), slog.Any("err", err))
		return Result{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		slog.Warn("floor stock lookup request failed", slog.String("part_number", partNumber), slog.Any("err", err))
		return Result{}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("floor stock lookup unreachable", slog.String("part_number", partNumber), slog.Any("err", err))
		return Result{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("floor stock lookup rejected", slog.String("part_number", partNumber), slog.Int("status", resp.StatusCode))
		return Result{}
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		slog.Warn("floor stock lookup decode failed", slog.String("part_number", partNumber), slog.Any("err", err))
		return Result{}
	}

	if !decoded.IsFloorStock {
		return Result{}
	}
	return Result{FloorStock: true, Location: strings.TrimSpace(decoded.Location)}
}
