package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordswipe/internal/logger"
	"github.com/bastiangx/wordswipe/pkg/geom"
	"github.com/bastiangx/wordswipe/pkg/recognize"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

var errMalformedPoint = errors.New("point must be an [x, y] pair")

// Options tune request handling.
type Options struct {
	DefaultK int     // used when a request has no k
	MaxK     int     // upper clamp for k
	YScale   float64 // vertical weight applied while normalizing points
	NearMax  int     // suggestions returned for a non-member
}

// DefaultOptions returns the values used by the wordswipe binary.
func DefaultOptions() Options {
	return Options{DefaultK: 7, MaxK: 64, YScale: 0.4, NearMax: 5}
}

// Server handles the msgpack IPC for gesture recognition
type Server struct {
	recognizer recognize.IRecognizer
	opts       Options
	decoder    *msgpack.Decoder
	encoder    *msgpack.Encoder
	logger     *log.Logger
	requests   int
}

// NewServer creates a server on stdin/stdout
func NewServer(r recognize.IRecognizer, opts Options) *Server {
	return NewServerIO(r, opts, os.Stdin, os.Stdout)
}

// NewServerIO creates a server on the given streams
func NewServerIO(r recognize.IRecognizer, opts Options, in io.Reader, out io.Writer) *Server {
	def := DefaultOptions()
	if opts.DefaultK <= 0 {
		opts.DefaultK = def.DefaultK
	}
	if opts.MaxK <= 0 {
		opts.MaxK = def.MaxK
	}
	if opts.YScale <= 0 {
		opts.YScale = def.YScale
	}
	if opts.NearMax <= 0 {
		opts.NearMax = def.NearMax
	}

	return &Server{
		recognizer: r,
		opts:       opts,
		decoder:    msgpack.NewDecoder(in),
		encoder:    msgpack.NewEncoder(out),
		logger:     logger.New("server"),
	}
}

// Start processes requests until the input ends or ctx is cancelled.
// A clean EOF returns nil.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting msgpack server")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}
		s.requests++

		if err := s.handle(ctx, raw); err != nil {
			return err
		}
	}
}

// handle answers one message. Only write failures and cancellation are returned.
func (s *Server) handle(ctx context.Context, raw msgpack.RawMessage) error {
	var env envelope
	if err := msgpack.Unmarshal(raw, &env); err != nil {
		return s.sendError("", fmt.Sprintf("malformed request: %v", err), CodeBadRequest)
	}

	switch {
	case env.Points != nil:
		var req RecognizeRequest
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			return s.sendError(env.ID, fmt.Sprintf("malformed gesture: %v", err), CodeBadRequest)
		}
		return s.handleRecognize(ctx, req)
	case env.Word != "":
		return s.handleContains(ContainsRequest{ID: env.ID, Word: env.Word})
	default:
		return s.sendError(env.ID, "request needs pts or word", CodeBadRequest)
	}
}

func (s *Server) handleRecognize(ctx context.Context, req RecognizeRequest) error {
	start := time.Now()

	path, err := s.toPath(req)
	if err != nil {
		return s.sendError(req.ID, err.Error(), CodeBadRequest)
	}

	k := req.K
	if k <= 0 {
		k = s.opts.DefaultK
	}
	k = min(k, s.opts.MaxK)

	results, err := s.recognizer.Recognize(ctx, path, k)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, recognize.ErrEmptyQuery):
		return s.sendError(req.ID, "empty gesture", CodeEmptyGesture)
	case errors.Is(err, recognize.ErrInvalidParameter):
		return s.sendError(req.ID, err.Error(), CodeBadRequest)
	case err != nil:
		s.logger.Errorf("Recognition failed for %s: %v", req.ID, err)
		return s.sendError(req.ID, err.Error(), CodeInternalError)
	}

	suggestions := make([]Suggestion, len(results))
	for i, c := range results {
		suggestions[i] = Suggestion{Word: c.Word, Distance: c.Distance, Rank: uint16(i + 1)}
	}

	resp := RecognizeResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   time.Since(start).Microseconds(),
	}
	s.logger.Debugf("Request %s: %d points -> %d words in %dµs", req.ID, len(path), resp.Count, resp.TimeTaken)
	return s.send(resp)
}

// toPath converts request points into the keyboard-relative frame.
func (s *Server) toPath(req RecognizeRequest) (geom.Path, error) {
	abs := make([]geom.Point, len(req.Points))
	for i, p := range req.Points {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: point %d has %d values", errMalformedPoint, i, len(p))
		}
		abs[i] = geom.Point{X: p[0], Y: p[1]}
	}

	width, height := req.Width, req.Height
	if width == 0 && height == 0 {
		width, height = 1, 1
	}
	return geom.Normalize(abs, width, height, s.opts.YScale)
}

func (s *Server) handleContains(req ContainsRequest) error {
	resp := ContainsResponse{ID: req.ID, OK: s.recognizer.Contains(req.Word)}
	if !resp.OK {
		resp.Near = s.recognizer.Nearest(req.Word, s.opts.NearMax)
	}
	return s.send(resp)
}

func (s *Server) sendError(id, msg string, code int) error {
	s.logger.Warnf("Request %q failed (%d): %s", id, code, msg)
	return s.send(ErrorResponse{ID: id, Error: msg, Code: code})
}

func (s *Server) send(v any) error {
	if err := s.encoder.Encode(v); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
