package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtree/internal/logger"
	"github.com/bastiangx/wordtree/internal/utils"
	"github.com/bastiangx/wordtree/pkg/config"
	"github.com/bastiangx/wordtree/pkg/dictionary"
	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const defaultLimit = 10

// Server handles the IPC for word completions
type Server struct {
	completer suggest.ICompleter
	loader    *dictionary.Loader
	config    *config.Config
	log       *log.Logger
}

// NewServer returns a server answering from completer. loader may be nil,
// in which case size requests fail.
func NewServer(completer suggest.ICompleter, loader *dictionary.Loader, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		completer: completer,
		loader:    loader,
		config:    cfg,
		log:       logger.New("server"),
	}
}

// Start serves stdin and stdout until EOF or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve announces readiness on w, then answers every request decoded from r
// in order. It returns nil at EOF and ctx.Err() once ctx is done; a pending
// read is abandoned in that case, and the reading goroutine exits once
// that read returns. A frame that does not decode is answered
// with a 400 error and ends the stream, since the decoder cannot resync.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.log.Debug("Starting server")
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dec := msgpack.NewDecoder(bufio.NewReader(r))
	enc := msgpack.NewEncoder(w)

	if err := enc.Encode(StatusResponse{Status: "ready"}); err != nil {
		return fmt.Errorf("write ready: %w", err)
	}

	reqs := make(chan Request)
	errs := make(chan error, 1)
	go func() {
		for {
			var req Request
			if err := dec.Decode(&req); err != nil {
				errs <- err
				return
			}
			select {
			case reqs <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errs:
			if errors.Is(err, io.EOF) {
				s.log.Debug("Client disconnected")
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			if encErr := enc.Encode(CompletionError{Error: "invalid msgpack request", Code: 400}); encErr != nil {
				return encErr
			}
			return fmt.Errorf("decode request: %w", err)
		case req := <-reqs:
			if err := enc.Encode(s.Handle(ctx, req)); err != nil {
				return fmt.Errorf("write response %s: %w", req.ID, err)
			}
		}
	}
}

func fail(id string, code int, format string, args ...any) CompletionError {
	return CompletionError{ID: id, Error: fmt.Sprintf(format, args...), Code: code}
}

// Handle answers a single request. The result is one of the response types
// of this package.
func (s *Server) Handle(ctx context.Context, req Request) any {
	switch req.Op {
	case "", "complete", "fuzzy":
		return s.handleComplete(req)
	case "almost":
		return s.handleAlmost(req)
	case "suggest":
		word, ok := s.completer.Suggest(req.Prefix)
		if !ok {
			return fail(req.ID, 404, "no word starts with '%s'", req.Prefix)
		}
		return WordResponse{ID: req.ID, Word: word, Index: s.completer.IndexOf(word)}
	case "index":
		i := s.completer.IndexOf(req.Word)
		if i < 0 {
			return fail(req.ID, 404, "'%s' is not stored", req.Word)
		}
		return WordResponse{ID: req.ID, Word: req.Word, Index: i}
	case "at":
		sg, err := s.completer.WordAt(req.Index)
		if err != nil {
			return fail(req.ID, 404, "%v", err)
		}
		return WordResponse{ID: req.ID, Word: sg.Word, Index: req.Index, Freq: sg.Frequency}
	case "prev", "next":
		return s.handleNeighbour(req)
	case "add":
		if err := s.completer.AddWord(req.Word, req.Frequency); err != nil {
			return fail(req.ID, 400, "%v", err)
		}
		return WordResponse{ID: req.ID, Word: req.Word, Index: s.completer.IndexOf(req.Word), Freq: req.Frequency}
	case "remove":
		if !s.completer.RemoveWord(req.Word) {
			return fail(req.ID, 404, "'%s' is not stored", req.Word)
		}
		return WordResponse{ID: req.ID, Word: req.Word, Index: -1}
	case "size":
		return s.handleSize(ctx, req)
	case "stats":
		return StatsResponse{ID: req.ID, Stats: s.completer.Stats()}
	case "health":
		return StatusResponse{ID: req.ID, Status: "ok"}
	default:
		return fail(req.ID, 400, "unknown op: %s", req.Op)
	}
}

func (s *Server) limit(requested int) int {
	if requested < 1 {
		requested = defaultLimit
	}
	if maxLimit := s.config.Server.MaxLimit; maxLimit > 0 && requested > maxLimit {
		return maxLimit
	}
	return requested
}

// checkPrefix enforces the configured prefix length window, in runes.
func (s *Server) checkPrefix(id, prefix string) (CompletionError, bool) {
	n := utf8.RuneCountInString(prefix)
	switch {
	case prefix == "":
		return fail(id, 400, "missing prefix"), false
	case n < s.config.Server.MinPrefix:
		return fail(id, 400, "prefix must be at least %d characters", s.config.Server.MinPrefix), false
	case s.config.Server.MaxPrefix > 0 && n > s.config.Server.MaxPrefix:
		return fail(id, 400, "prefix exceeds maximum length of %d characters", s.config.Server.MaxPrefix), false
	}
	return CompletionError{}, true
}

func respond(id string, found []suggest.Suggestion, elapsed time.Duration) CompletionResponse {
	ranks := utils.CreateRankList(len(found))
	out := make([]CompletionSuggestion, len(found))
	for i, sg := range found {
		out[i] = CompletionSuggestion{Word: sg.Word, Rank: ranks[i], Freq: sg.Frequency}
	}
	return CompletionResponse{
		ID:          id,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
		Corrected:   len(found) > 0 && found[0].WasCorrected,
	}
}

func (s *Server) handleComplete(req Request) any {
	if e, ok := s.checkPrefix(req.ID, req.Prefix); !ok {
		s.log.Debugf("Rejected prefix %q: %s", req.Prefix, e.Error)
		return e
	}
	if s.config.Server.EnableFilter && !utils.IsValidInput(req.Prefix) {
		return respond(req.ID, nil, 0)
	}

	start := time.Now()
	var found []suggest.Suggestion
	if req.Op == "fuzzy" {
		found = s.completer.CompleteFuzzy(req.Prefix, s.limit(req.Limit))
	} else {
		found = s.completer.Complete(req.Prefix, s.limit(req.Limit))
	}
	return respond(req.ID, found, time.Since(start))
}

func (s *Server) handleAlmost(req Request) any {
	if e, ok := s.checkPrefix(req.ID, req.Prefix); !ok {
		return e
	}
	if req.Distance < 0 || req.Tolerance < 0 {
		return fail(req.ID, 400, "distance and tolerance must not be negative")
	}

	start := time.Now()
	found := s.completer.Almost(req.Prefix, req.Distance, req.Tolerance)
	if limit := s.limit(req.Limit); len(found) > limit {
		found = found[:limit]
	}
	return respond(req.ID, found, time.Since(start))
}

func (s *Server) handleNeighbour(req Request) any {
	sg, ok, side := suggest.Suggestion{}, false, "after"
	if req.Op == "prev" {
		sg, ok = s.completer.Lower(req.Word)
		side = "before"
	} else {
		sg, ok = s.completer.Higher(req.Word)
	}
	if !ok {
		return fail(req.ID, 404, "no word %s '%s'", side, req.Word)
	}
	return WordResponse{ID: req.ID, Word: sg.Word, Index: s.completer.IndexOf(sg.Word), Freq: sg.Frequency}
}

func (s *Server) handleSize(ctx context.Context, req Request) any {
	if s.loader == nil {
		return fail(req.ID, 400, "no chunk directory loaded")
	}
	if req.Chunks < 0 {
		return fail(req.ID, 400, "chunk count must not be negative")
	}
	if req.Chunks > 0 {
		if err := s.loader.Resize(ctx, req.Chunks); err != nil {
			return fail(req.ID, 500, "resize: %v", err)
		}
	}

	options, err := s.loader.SizeOptions()
	if err != nil {
		return fail(req.ID, 500, "list chunks: %v", err)
	}
	resp := DictionaryResponse{
		ID:              req.ID,
		Status:          "ok",
		CurrentChunks:   len(s.loader.LoadedIDs()),
		AvailableChunks: len(options),
	}
	for _, o := range options {
		resp.Options = append(resp.Options, DictionarySizeOption{
			ChunkCount: o.Chunks,
			WordCount:  o.Words,
			SizeLabel:  o.Label,
		})
	}
	return resp
}
