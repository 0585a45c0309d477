// Package socket implements a JSON-over-Unix-socket protocol for the lattice daemon.
// The protocol uses newline-delimited JSON: each message is one JSON object + \n.
package socket

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
)

// SocketPath returns the Unix socket path for a given config file.
// Format: /tmp/lattice-{first12hex}.sock
func SocketPath(configPath string) string {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		abs = configPath
	}
	h := sha256.Sum256([]byte(abs))
	return fmt.Sprintf("/tmp/lattice-%x.sock", h[:6])
}

// Method names for the protocol.
const (
	MethodSearch   = "search"
	MethodSuggest  = "suggest"
	MethodCheck    = "check"
	MethodStats    = "stats"
	MethodHealth   = "health"
	MethodShutdown = "shutdown"
)

// Request is the wire format for client-to-server messages.
type Request struct {
	ID     string      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// Response is the wire format for server-to-client messages.
type Response struct {
	ID     string      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// SearchParams is the params for a search request.
type SearchParams struct {
	Role  string `json:"role,omitempty"`
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// SearchResult is the result of a search request.
type SearchResult struct {
	Hits    []SearchHit `json:"hits"`
	Count   int         `json:"count"`
	Elapsed string      `json:"elapsed"`
}

// SearchHit is a single ranked document in search results (wire format).
type SearchHit struct {
	ID   string   `json:"id"`
	Rank uint64   `json:"rank"`
	Tags []string `json:"tags,omitempty"`
}

// SuggestParams is the params for a suggest request. Threshold is a
// pointer so an explicit 0 (return every candidate) is distinguishable
// from an absent field, which defaults server-side.
type SuggestParams struct {
	Role      string   `json:"role,omitempty"`
	Prefix    string   `json:"prefix"`
	Fuzzy     bool     `json:"fuzzy,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	Limit     int      `json:"limit,omitempty"`
}

// SuggestResult is the result of a suggest request.
type SuggestResult struct {
	Suggestions []Suggestion `json:"suggestions"`
	Count       int          `json:"count"`
}

// Suggestion is a single autocomplete candidate (wire format).
type Suggestion struct {
	Term  string  `json:"term"`
	Value string  `json:"value"`
	URL   string  `json:"url,omitempty"`
	Score float64 `json:"score"`
}

// CheckParams is the params for a connectivity check request.
type CheckParams struct {
	Role string `json:"role,omitempty"`
	Text string `json:"text"`
}

// CheckResult is the result of a connectivity check request.
type CheckResult struct {
	Concepts    int  `json:"concepts"`
	Connected   bool `json:"connected"`
	Approximate bool `json:"approximate"`
}

// StatsParams is the params for a stats request.
type StatsParams struct {
	Role string `json:"role,omitempty"`
}

// StatsResult is the result of a stats request.
type StatsResult struct {
	Role      string `json:"role"`
	TermCount int    `json:"term_count"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

// HealthResult is the result of a health request.
type HealthResult struct {
	Status    string   `json:"status"`
	Roles     []string `json:"roles"`
	Uptime    string   `json:"uptime"`
	TermCount int      `json:"term_count"`
}
