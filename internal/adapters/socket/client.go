package socket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Client connects to the lattice daemon over a Unix socket.
type Client struct {
	sockPath string
}

// NewClient creates a client that will connect to the given socket path.
func NewClient(sockPath string) *Client {
	return &Client{sockPath: sockPath}
}

// Search sends a search request and returns the ranked hits.
func (c *Client) Search(role, query string, limit int) (*SearchResult, error) {
	var result SearchResult
	if err := c.callInto(Request{
		ID:     "1",
		Method: MethodSearch,
		Params: SearchParams{Role: role, Query: query, Limit: limit},
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Suggest sends an autocomplete request.
func (c *Client) Suggest(role string, params SuggestParams) (*SuggestResult, error) {
	params.Role = role
	var result SuggestResult
	if err := c.callInto(Request{
		ID:     "1",
		Method: MethodSuggest,
		Params: params,
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Check sends a connectivity check request.
func (c *Client) Check(role, text string) (*CheckResult, error) {
	var result CheckResult
	if err := c.callInto(Request{
		ID:     "1",
		Method: MethodCheck,
		Params: CheckParams{Role: role, Text: text},
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats sends a stats request.
func (c *Client) Stats(role string) (*StatsResult, error) {
	var result StatsResult
	if err := c.callInto(Request{
		ID:     "1",
		Method: MethodStats,
		Params: StatsParams{Role: role},
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health sends a health check request.
func (c *Client) Health() (*HealthResult, error) {
	var result HealthResult
	if err := c.callInto(Request{
		ID:     "1",
		Method: MethodHealth,
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Shutdown sends a shutdown request to the daemon.
func (c *Client) Shutdown() error {
	_, err := c.call(Request{
		ID:     "1",
		Method: MethodShutdown,
	})
	return err
}

// Ping checks if the daemon is reachable.
func (c *Client) Ping() bool {
	conn, err := net.DialTimeout("unix", c.sockPath, 500*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// callInto performs a request and decodes the result payload into out.
func (c *Client) callInto(req Request, out interface{}) error {
	resp, err := c.call(req)
	if err != nil {
		return err
	}
	resultJSON, err := json.Marshal(resp.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := json.Unmarshal(resultJSON, out); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	return nil
}

func (c *Client) call(req Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.sockPath, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Deadline covers the whole request/response
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		return nil, fmt.Errorf("empty response")
	}

	var resp Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("server error: %s", resp.Error)
	}
	return &resp, nil
}
