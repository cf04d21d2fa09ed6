package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownAction is reported for requests with an unsupported action.
var ErrUnknownAction = errors.New("unknown action")

// Server handles the IPC for word completions
type Server struct {
	completer suggest.ICompleter
	config    *config.Config
	decoder   *msgpack.Decoder
	writer    *bufio.Writer
	encoder   *msgpack.Encoder
	logger    *log.Logger
	requests  int
}

// NewServer creates a completion server using stdin/stdout for IPC
func NewServer(completer suggest.ICompleter, cfg *config.Config) *Server {
	return NewServerWithIO(completer, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a completion server reading requests from r and
// writing responses to w.
func NewServerWithIO(completer suggest.ICompleter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	writer := bufio.NewWriter(w)
	return &Server{
		completer: completer,
		config:    cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		writer:    writer,
		encoder:   msgpack.NewEncoder(writer),
		logger:    logger.New("server"),
	}
}

// Start serves requests until the input is exhausted.
func (s *Server) Start() error {
	s.logger.Debug("Starting Server.")
	s.send(StatusMessage{Status: "ready"})

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}
		s.requests++
		s.handleRequest(raw)
	}
}

// handleRequest routes a raw msgpack message by its action
func (s *Server) handleRequest(raw msgpack.RawMessage) {
	var env envelope
	if err := msgpack.Unmarshal(raw, &env); err != nil {
		s.logger.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "invalid request", 400)
		return
	}

	switch env.Action {
	case "", "complete":
		var req CompletionRequest
		if s.decode(raw, env.ID, &req) {
			s.handleComplete(req)
		}
	case "add", "remove":
		var req IndexRequest
		if s.decode(raw, env.ID, &req) {
			s.handleIndex(req)
		}
	case "stats", "top":
		var req StatsRequest
		if s.decode(raw, env.ID, &req) {
			s.handleStats(req)
		}
	default:
		s.sendError(env.ID, fmt.Sprintf("%v: %q", ErrUnknownAction, env.Action), 400)
	}
}

func (s *Server) decode(raw msgpack.RawMessage, id string, v any) bool {
	if err := msgpack.Unmarshal(raw, v); err != nil {
		s.logger.Errorf("Unmarshaling request %s: %v", id, err)
		s.sendError(id, "invalid request fields", 400)
		return false
	}
	return true
}

// handleComplete validates the prefix against the server config, completes
// it and reshapes results to the capitalization the client typed.
func (s *Server) handleComplete(req CompletionRequest) {
	prefix := strings.TrimSpace(req.Prefix)
	cfg := s.config.Server

	if prefix == "" {
		s.sendError(req.ID, "missing prefix", 400)
		return
	}
	if n := utf8.RuneCountInString(prefix); n < cfg.MinPrefix || n > cfg.MaxPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix length must be between %d and %d characters", cfg.MinPrefix, cfg.MaxPrefix), 400)
		return
	}
	if cfg.EnableFilter && !validPrefix(prefix) {
		s.sendError(req.ID, "prefix has no completable word", 422)
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.config.Rank.DefaultLimit
	}
	limit = min(limit, cfg.MaxLimit)

	start := time.Now()
	suggestions := s.completer.Suggest(prefix, req.Fuzzy, limit)
	elapsed := time.Since(start)

	out := make([]CompletionSuggestion, 0, len(suggestions))
	for i, sg := range suggestions {
		out = append(out, CompletionSuggestion{
			Word:      utils.MatchCase(sg.Word, prefix),
			Rank:      uint16(i + 1),
			Frequency: sg.Frequency,
		})
	}
	s.logger.Debugf("Completed %q with %d suggestions in %v", prefix, len(out), elapsed)

	s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// validPrefix checks the word being completed, ignoring earlier words.
func validPrefix(prefix string) bool {
	fields := strings.Fields(prefix)
	return utils.IsValidInput(strings.ToLower(fields[len(fields)-1]))
}

func (s *Server) handleIndex(req IndexRequest) {
	if strings.TrimSpace(req.Text) == "" {
		s.sendError(req.ID, "missing text", 400)
		return
	}
	if req.Action == "add" {
		s.completer.AddText(req.Text)
	} else {
		s.completer.RemoveText(req.Text)
	}
	s.send(IndexResponse{
		ID:     req.ID,
		Status: "ok",
		Tokens: s.completer.Stats()["tokens"],
	})
}

func (s *Server) handleStats(req StatsRequest) {
	if req.Action == "stats" {
		s.send(StatsResponse{ID: req.ID, Stats: s.completer.Stats()})
		return
	}
	limit := req.Limit
	if limit < 1 {
		limit = s.config.Rank.DefaultLimit
	}
	pairs := s.completer.MostCommon(limit)
	top := make([]CompletionSuggestion, 0, len(pairs))
	for i, p := range pairs {
		top = append(top, CompletionSuggestion{Word: p.Word, Rank: uint16(i + 1), Frequency: p.Count})
	}
	s.send(StatsResponse{ID: req.ID, Top: top})
}

// send encodes and flushes one response
func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.logger.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.logger.Debugf("Request %s failed: %s", id, message)
	s.send(CompletionError{ID: id, Error: message, Code: code})
}
