package thesaurus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// fetchTimeout bounds the remote thesaurus fetch. Thesaurus construction
// is the only phase allowed to block on I/O and runs off the query path.
const fetchTimeout = 30 * time.Second

// LoadJSON parses a thesaurus from its serialized JSON form.
func LoadJSON(data []byte) (*Thesaurus, error) {
	t := New("")
	if err := json.Unmarshal(data, t); err != nil {
		return nil, &BuildError{Source: "json", Err: err}
	}
	return t, nil
}

// LoadFile loads a pre-built JSON thesaurus from the local filesystem.
func LoadFile(path string) (*Thesaurus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &BuildError{Source: path, Err: err}
	}
	t := New("")
	if err := json.Unmarshal(data, t); err != nil {
		return nil, &BuildError{Source: path, Err: err}
	}
	return t, nil
}

// Fetch downloads a pre-built JSON thesaurus from a remote URL.
// Unreachable or unparsable sources fail the build.
func Fetch(ctx context.Context, url string) (*Thesaurus, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &BuildError{Source: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, &BuildError{Source: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &BuildError{Source: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &BuildError{Source: url, Err: err}
	}

	t := New("")
	if err := json.Unmarshal(data, t); err != nil {
		return nil, &BuildError{Source: url, Err: err}
	}
	return t, nil
}
