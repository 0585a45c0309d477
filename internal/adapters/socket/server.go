package socket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/lattice-search/lattice/internal/app"
)

// Server is the daemon that listens on a Unix socket and answers search,
// suggest, connectivity and stats requests against the built roles.
type Server struct {
	app      *app.App
	listener net.Listener
	sockPath string
	started  time.Time

	done         chan struct{}
	shutdownCh   chan struct{} // closed when a remote shutdown request is received
	shutdownOnce sync.Once
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// NewServer creates a daemon server backed by the given app.
func NewServer(a *app.App, sockPath string) *Server {
	return &Server{
		app:        a,
		sockPath:   sockPath,
		done:       make(chan struct{}),
		shutdownCh: make(chan struct{}),
	}
}

// Start begins listening on the Unix socket. It handles stale sockets by
// attempting a connection first — if the connection fails, the stale socket
// is removed before binding.
func (s *Server) Start() error {
	if _, err := os.Stat(s.sockPath); err == nil {
		conn, err := net.DialTimeout("unix", s.sockPath, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return fmt.Errorf("daemon already running at %s", s.sockPath)
		}
		// Stale socket — remove it
		os.Remove(s.sockPath)
	}

	ln, err := net.Listen("unix", s.sockPath)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = ln
	s.started = time.Now()

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Stop gracefully shuts down the server, closing the listener and removing
// the socket file. Idempotent — safe to call multiple times (e.g., after
// remote shutdown + signal).
func (s *Server) Stop() error {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}
		s.wg.Wait()
		os.Remove(s.sockPath)
	})
	return nil
}

// ShutdownCh returns a channel that is closed when a remote shutdown request
// is received. The daemon's main goroutine should select on this alongside
// OS signals so the process actually exits after a remote stop.
func (s *Server) ShutdownCh() <-chan struct{} {
	return s.shutdownCh
}

// Addr returns the socket path the server is listening on.
func (s *Server) Addr() string {
	return s.sockPath
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024) // 1MB max message

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeResponse(conn, Response{Error: "invalid request JSON"})
			continue
		}

		resp := s.handleRequest(req)
		s.writeResponse(conn, resp)

		if req.Method == MethodShutdown {
			s.shutdownOnce.Do(func() { close(s.shutdownCh) })
			return
		}
	}
}

func (s *Server) handleRequest(req Request) Response {
	switch req.Method {
	case MethodSearch:
		return s.handleSearch(req)
	case MethodSuggest:
		return s.handleSuggest(req)
	case MethodCheck:
		return s.handleCheck(req)
	case MethodStats:
		return s.handleStats(req)
	case MethodHealth:
		return s.handleHealth(req)
	case MethodShutdown:
		return Response{ID: req.ID, Result: struct{}{}}
	default:
		return Response{ID: req.ID, Error: fmt.Sprintf("unknown method: %s", req.Method)}
	}
}

// role resolves the addressed role, falling back to the first configured
// one when the request names none.
func (s *Server) role(name string) (*app.Role, error) {
	if name == "" {
		names := s.app.Names()
		if len(names) == 0 {
			return nil, fmt.Errorf("no roles configured")
		}
		name = names[0]
	}
	role := s.app.Role(name)
	if role == nil {
		return nil, fmt.Errorf("unknown role: %s", name)
	}
	return role, nil
}

func decodeParams(req Request, out interface{}) error {
	raw, err := json.Marshal(req.Params)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *Server) handleSearch(req Request) Response {
	var params SearchParams
	if err := decodeParams(req, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid search params"}
	}
	role, err := s.role(params.Role)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}

	start := time.Now()
	ranks := role.Search(params.Query, limit)
	elapsed := time.Since(start)

	hits := make([]SearchHit, len(ranks))
	for i, dr := range ranks {
		hits[i] = SearchHit{ID: dr.ID, Rank: dr.Rank, Tags: dr.Tags}
	}
	return Response{
		ID: req.ID,
		Result: SearchResult{
			Hits:    hits,
			Count:   len(hits),
			Elapsed: elapsed.String(),
		},
	}
}

func (s *Server) handleSuggest(req Request) Response {
	var params SuggestParams
	if err := decodeParams(req, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid suggest params"}
	}
	role, err := s.role(params.Role)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}
	threshold := 0.8
	if params.Threshold != nil {
		threshold = *params.Threshold
	}

	var suggestions []Suggestion
	if params.Fuzzy {
		for _, r := range role.Autocomplete.FuzzySearch(params.Prefix, threshold, limit) {
			suggestions = append(suggestions, Suggestion{Term: r.Term, Value: string(r.Value), URL: r.URL, Score: r.Score})
		}
	} else {
		for _, r := range role.Autocomplete.LookupPrefix(params.Prefix, limit) {
			suggestions = append(suggestions, Suggestion{Term: r.Term, Value: string(r.Value), URL: r.URL, Score: r.Score})
		}
	}
	return Response{
		ID: req.ID,
		Result: SuggestResult{
			Suggestions: suggestions,
			Count:       len(suggestions),
		},
	}
}

func (s *Server) handleCheck(req Request) Response {
	var params CheckParams
	if err := decodeParams(req, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid check params"}
	}
	role, err := s.role(params.Role)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}

	ids := role.Graph.FindMatchingNodeIDs(params.Text)
	connected, approximate := role.Graph.PathCheck(params.Text)
	return Response{
		ID: req.ID,
		Result: CheckResult{
			Concepts:    len(ids),
			Connected:   connected,
			Approximate: approximate,
		},
	}
}

func (s *Server) handleStats(req Request) Response {
	var params StatsParams
	if err := decodeParams(req, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid stats params"}
	}
	role, err := s.role(params.Role)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{
		ID: req.ID,
		Result: StatsResult{
			Role:      role.Name,
			TermCount: role.Thesaurus.Len(),
			NodeCount: role.Graph.NodeCount(),
			EdgeCount: role.Graph.EdgeCount(),
		},
	}
}

func (s *Server) handleHealth(req Request) Response {
	names := s.app.Names()
	terms := 0
	for _, name := range names {
		if role := s.app.Role(name); role != nil {
			terms += role.Thesaurus.Len()
		}
	}
	return Response{
		ID: req.ID,
		Result: HealthResult{
			Status:    "ok",
			Roles:     names,
			Uptime:    time.Since(s.started).Round(time.Second).String(),
			TermCount: terms,
		},
	}
}

func (s *Server) writeResponse(conn net.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}
